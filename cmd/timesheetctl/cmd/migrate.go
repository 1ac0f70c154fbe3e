package cmd

import (
	"context"
	"fmt"
	"time"

	"timesheet.service/internal/config"
	"timesheet.service/internal/ports/repository"
	"timesheet.service/pkg/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the timesheet tables in the configured database",
		Long: `Connects with the DB_* environment settings used by the API and
applies the timesheet_entries schema. Safe to run more than once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}

			db, err := database.NewConnection(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := repository.NewTimesheetRepository(db).Migrate(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Schema applied to %s on %s:%s\n", cfg.DBName, cfg.DBHost, cfg.DBPort)
			return nil
		},
	}
}
