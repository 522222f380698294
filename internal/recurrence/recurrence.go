package recurrence

import (
	"math"
	"time"

	"github.com/dosewatch/dosewatch/internal/constants"
	"github.com/dosewatch/dosewatch/internal/models"
)

// IsDue decides whether a schedule produces a dose on the given calendar
// date. The prescription range check runs first, independent of pattern:
// outside [start, end] nothing is ever due. Malformed patterns are never
// due (fail closed, never defaulting to daily).
//
// Inputs may arrive in different locations: the candidate date is the
// device's wall clock while the range bounds parse as UTC. Only the
// calendar date matters, so everything is normalized to a UTC civil date
// before comparing.
func IsDue(sched models.Schedule, date, start, end time.Time) bool {
	day := civilDate(date)
	if day.Before(civilDate(start)) || day.After(civilDate(end)) {
		return false
	}

	switch sched.Repeat {
	case models.RepeatDaily:
		return true
	case models.RepeatEveryXDays:
		interval := sched.IntervalDays
		if interval <= 0 {
			interval = 1
		}
		// Date-based arithmetic with explicit rounding to avoid DST drift.
		daysSince := int(math.Round(day.Sub(civilDate(start)).Hours() / 24))
		return daysSince%interval == 0
	case models.RepeatWeekly:
		wd, ok := models.ParseWeekday(sched.Weekday)
		if !ok {
			return false
		}
		return day.Weekday() == wd
	case models.RepeatMonthly:
		// Months shorter than the configured day produce no occurrence
		// that month. Day 31 never rolls over or clamps to day 30.
		return day.Day() == sched.MonthDay
	default:
		return false
	}
}

// TriggerInstant combines the date with the schedule's time-of-day in the
// date's own location. No timezone conversion happens; the device's local
// wall clock is authoritative.
func TriggerInstant(sched models.Schedule, date time.Time) (time.Time, error) {
	tod, err := time.Parse(constants.TimeFormat, sched.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), 0, 0,
		date.Location(),
	), nil
}

// civilDate keeps only the (year, month, day) tuple, anchored in UTC so
// instants from different locations compare as calendar dates.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
