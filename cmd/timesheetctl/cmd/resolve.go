package cmd

import (
	"fmt"
	"time"

	"timesheet.service/internal/core/timesheet"

	"github.com/spf13/cobra"
)

func newResolveCmd() *cobra.Command {
	var date, clock, zone string

	c := &cobra.Command{
		Use:     "resolve",
		Short:   "Print the UTC instant of a civil date and time",
		Example: `  timesheetctl resolve --date 2024-03-04 --time 09:00 --tz America/Sao_Paulo`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instant, err := timesheet.ResolveString(date, clock, zone)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), instant.Format(time.RFC3339))
			return nil
		},
	}

	c.Flags().StringVar(&date, "date", "", "civil date (YYYY-MM-DD)")
	c.Flags().StringVar(&clock, "time", "", "wall-clock time (HH:mm)")
	c.Flags().StringVar(&zone, "tz", "UTC", "IANA time zone")
	_ = c.MarkFlagRequired("date")
	_ = c.MarkFlagRequired("time")
	return c
}
