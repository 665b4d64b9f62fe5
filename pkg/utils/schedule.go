package utils

import (
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/segyhp/hotel-backoffice/internal/domain"
	customError "github.com/segyhp/hotel-backoffice/pkg/errors"
)

// NextRunNotSet is shown when a schedule has no time of day yet
const NextRunNotSet = "Not set"

const nextRunLayout = "Mon, Jan 2, 2006 at 3:04 PM"

// TimeOfDayPattern matches a 24-hour HH:MM string
var TimeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ParseTimeOfDay splits an HH:MM string into hours and minutes
func ParseTimeOfDay(s string) (int, int, error) {
	if s == "" {
		return 0, 0, customError.ErrScheduleTimeNotSet
	}
	if !TimeOfDayPattern.MatchString(s) {
		return 0, 0, customError.ErrInvalidScheduleTime
	}
	hours, _ := strconv.Atoi(s[:2])
	minutes, _ := strconv.Atoi(s[3:])
	return hours, minutes, nil
}

// NextRun projects the next execution of spec strictly after now. The
// result is in now's location. Monthly days past the end of a month are
// clamped to the month's last day.
func NextRun(spec domain.ScheduleSpec, now time.Time) (time.Time, error) {
	hours, minutes, err := ParseTimeOfDay(spec.Time)
	if err != nil {
		return time.Time{}, err
	}

	switch spec.Frequency {
	case domain.FrequencyHourly, domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly:
	default:
		return time.Time{}, customError.ErrUnsupportedFrequency
	}

	if spec.DayOfWeek != nil && (*spec.DayOfWeek < 0 || *spec.DayOfWeek > 6) {
		return time.Time{}, customError.ErrInvalidScheduleDay
	}
	if spec.DayOfMonth != nil && (*spec.DayOfMonth < 1 || *spec.DayOfMonth > 31) {
		return time.Time{}, customError.ErrInvalidScheduleDay
	}

	loc := now.Location()
	next := time.Date(now.Year(), now.Month(), now.Day(), hours, minutes, 0, 0, loc)

	if !next.After(now) {
		switch spec.Frequency {
		case domain.FrequencyHourly:
			next = time.Date(now.Year(), now.Month(), now.Day(), now.Hour()+1, minutes, 0, 0, loc)
		case domain.FrequencyDaily:
			next = next.AddDate(0, 0, 1)
		case domain.FrequencyWeekly:
			if spec.DayOfWeek != nil {
				delta := weekdayDelta(*spec.DayOfWeek, now.Weekday())
				if delta == 0 {
					delta = 7
				}
				next = next.AddDate(0, 0, delta)
			} else {
				next = next.AddDate(0, 0, 7)
			}
		case domain.FrequencyMonthly:
			if spec.DayOfMonth != nil {
				next = monthlyRun(next, *spec.DayOfMonth, now)
			} else {
				next = dayInMonth(next, 1, next.Day())
			}
		}
		return next, nil
	}

	switch spec.Frequency {
	case domain.FrequencyWeekly:
		if spec.DayOfWeek != nil && time.Weekday(*spec.DayOfWeek) != now.Weekday() {
			next = next.AddDate(0, 0, weekdayDelta(*spec.DayOfWeek, now.Weekday()))
		}
	case domain.FrequencyMonthly:
		if spec.DayOfMonth != nil {
			next = monthlyRun(next, *spec.DayOfMonth, now)
		}
	}

	return next, nil
}

// PreviewNextRun renders the next run for display. A schedule without a
// time yields the NextRunNotSet placeholder rather than an error.
func PreviewNextRun(spec domain.ScheduleSpec, now time.Time) (*domain.NextRunPreview, error) {
	next, err := NextRun(spec, now)
	if errors.Is(err, customError.ErrScheduleTimeNotSet) {
		return &domain.NextRunPreview{Display: NextRunNotSet}, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.NextRunPreview{NextRun: &next, Display: FormatNextRun(next)}, nil
}

// FormatNextRun formats a next-run instant for operators
func FormatNextRun(t time.Time) string {
	return t.Format(nextRunLayout)
}

func weekdayDelta(target int, today time.Weekday) int {
	return (target + 7 - int(today)) % 7
}

// monthlyRun moves candidate to day of its month, or of the following
// month when that instant is not after now
func monthlyRun(candidate time.Time, day int, now time.Time) time.Time {
	next := dayInMonth(candidate, 0, day)
	if !next.After(now) {
		next = dayInMonth(candidate, 1, day)
	}
	return next
}

// dayInMonth returns t shifted by months with its day set to day, clamped
// to the last day of the resulting month. Time of day is kept.
func dayInMonth(t time.Time, months, day int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, t.Hour(), t.Minute(), 0, 0, t.Location())
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), 0, 0, t.Location())
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
