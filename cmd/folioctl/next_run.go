package main

import (
	"fmt"
	"time"

	"github.com/segyhp/hotel-backoffice/internal/domain"
	"github.com/segyhp/hotel-backoffice/pkg/utils"

	"github.com/spf13/cobra"
)

type nextRunFlags struct {
	frequency  string
	timeOfDay  string
	dayOfWeek  int
	dayOfMonth int
	now        string
	timezone   string
}

func newNextRunCmd() *cobra.Command {
	var f nextRunFlags

	cmd := &cobra.Command{
		Use:   "next-run",
		Short: "Show when a backup schedule fires next",
		Example: `  folioctl next-run --frequency daily --time 00:00
  folioctl next-run --frequency monthly --time 02:00 --day-of-month 31 --now 2024-04-10T12:00:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec := domain.ScheduleSpec{Frequency: f.frequency, Time: f.timeOfDay}
			if cmd.Flags().Changed("day-of-week") {
				spec.DayOfWeek = &f.dayOfWeek
			}
			if cmd.Flags().Changed("day-of-month") {
				spec.DayOfMonth = &f.dayOfMonth
			}

			now, err := f.resolveNow()
			if err != nil {
				return err
			}

			preview, err := utils.PreviewNextRun(spec, now)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), preview.Display)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.frequency, "frequency", "f", domain.FrequencyDaily, "hourly, daily, weekly or monthly")
	cmd.Flags().StringVarP(&f.timeOfDay, "time", "t", "", "Time of day as HH:MM (24h)")
	cmd.Flags().IntVar(&f.dayOfWeek, "day-of-week", 0, "Weekday for weekly schedules, 0 = Sunday")
	cmd.Flags().IntVar(&f.dayOfMonth, "day-of-month", 1, "Day for monthly schedules, 1-31")
	cmd.Flags().StringVar(&f.now, "now", "", "Reference instant (RFC3339), defaults to the current time")
	cmd.Flags().StringVar(&f.timezone, "tz", "", "IANA timezone for the projection, defaults to local")

	return cmd
}

func (f nextRunFlags) resolveNow() (time.Time, error) {
	loc := time.Local
	if f.timezone != "" {
		var err error
		if loc, err = time.LoadLocation(f.timezone); err != nil {
			return time.Time{}, fmt.Errorf("invalid --tz: %w", err)
		}
	}

	if f.now == "" {
		return time.Now().In(loc), nil
	}

	now, err := time.Parse(time.RFC3339, f.now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now: %w", err)
	}
	if f.timezone != "" {
		now = now.In(loc)
	}
	return now, nil
}
