package main

import (
	"os"

	"timesheet.service/cmd/timesheetctl/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
