package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"timesheet.service/internal/config"
	"timesheet.service/internal/core"
	"timesheet.service/internal/core/timesheet"
	"timesheet.service/internal/holiday"

	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	var date, in, out, zone string
	var isHoliday, holidayAuto bool

	c := &cobra.Command{
		Use:   "classify",
		Short: "Classify one shift into normal, overtime and time-bank hours",
		Long: `Classifies one shift with the policy configured through
LUNCH_THRESHOLD_MINUTES, LUNCH_DEDUCTION_MINUTES and STANDARD_SHIFT_MINUTES.
With --holiday-auto the date is looked up in the national calendar at
HOLIDAY_API_URL.`,
		Example: `  timesheetctl classify --date 2024-03-04 --in 09:00 --out 18:00 --tz America/Sao_Paulo
  timesheetctl classify --date 2024-12-25 --in 08:00 --out 12:30 --holiday`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}

			checkIn, err := timesheet.ResolveString(date, in, zone)
			if err != nil {
				return err
			}
			checkOut, err := timesheet.ResolveString(date, out, zone)
			if err != nil {
				return err
			}
			if !checkIn.Before(checkOut) {
				return core.ErrInvalidOrdering
			}

			if holidayAuto && !isHoliday {
				isHoliday, err = lookupHoliday(cmd.Context(), cfg.HolidayAPIURL, date)
				if err != nil {
					return err
				}
			}

			h := cfg.Policy().Classify(checkIn, checkOut, isHoliday)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Check-in:\t%s\n", checkIn.Format(time.RFC3339))
			fmt.Fprintf(w, "Check-out:\t%s\n", checkOut.Format(time.RFC3339))
			fmt.Fprintf(w, "Holiday:\t%t\n", isHoliday)
			fmt.Fprintf(w, "Total:\t%s\n", timesheet.FormatCentesimal(h.TotalHours))
			fmt.Fprintf(w, "Lunch:\t%s\n", timesheet.FormatCentesimal(h.LunchHours))
			fmt.Fprintf(w, "Normal:\t%s\n", timesheet.FormatCentesimal(h.NormalHours))
			fmt.Fprintf(w, "Overtime:\t%s\n", timesheet.FormatCentesimal(h.OvertimeHours))
			fmt.Fprintf(w, "Time bank:\t%s\n", timesheet.FormatCentesimal(h.BankHours))
			return w.Flush()
		},
	}

	c.Flags().StringVar(&date, "date", "", "civil date (YYYY-MM-DD)")
	c.Flags().StringVar(&in, "in", "", "check-in time (HH:mm)")
	c.Flags().StringVar(&out, "out", "", "check-out time (HH:mm)")
	c.Flags().StringVar(&zone, "tz", "UTC", "IANA time zone")
	c.Flags().BoolVar(&isHoliday, "holiday", false, "the date is a holiday")
	c.Flags().BoolVar(&holidayAuto, "holiday-auto", false, "look the date up in the national holiday calendar")
	for _, name := range []string{"date", "in", "out"} {
		_ = c.MarkFlagRequired(name)
	}
	return c
}

// lookupHoliday reports whether date is a national holiday. date has
// already been validated by the resolver.
func lookupHoliday(ctx context.Context, baseURL, date string) (bool, error) {
	d, err := timesheet.ParseDate(date)
	if err != nil {
		return false, err
	}

	client, err := holiday.NewClient(baseURL)
	if err != nil {
		return false, err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	holidays, err := client.NationalHolidays(ctx, d.Year)
	if err != nil {
		return false, err
	}
	return holiday.IsHoliday(holidays, date), nil
}
