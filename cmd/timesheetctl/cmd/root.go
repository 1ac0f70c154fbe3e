package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the timesheetctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "timesheetctl",
		Short: "Resolve and classify timesheet punches offline",
		Long: `timesheetctl runs the timesheet core without the API.

Commands:
  resolve   - civil date and time in a zone to a UTC instant
  classify  - one check-in/check-out pair to centesimal hours
  migrate   - apply the database schema`,
		SilenceUsage: true,
	}

	root.AddCommand(newResolveCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newMigrateCmd())
	return root
}
