package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dosewatch/dosewatch/internal/constants"
)

type RepeatPattern string

const (
	RepeatDaily      RepeatPattern = "daily"
	RepeatEveryXDays RepeatPattern = "every_x_days"
	RepeatWeekly     RepeatPattern = "weekly"
	RepeatMonthly    RepeatPattern = "monthly"
)

// Schedule is a dose time attached to a prescription. Only the fields
// relevant to the chosen repeat pattern are consulted; the rest are
// ignored even when present.
type Schedule struct {
	ID                  string        `json:"id"`
	PrescriptionID      string        `json:"prescription_id"`
	Time                string        `json:"time"` // HH:MM, device-local
	Repeat              RepeatPattern `json:"repeat"`
	IntervalDays        int           `json:"interval_days,omitempty"` // every_x_days only
	Weekday             string        `json:"weekday,omitempty"`       // weekly only, e.g. "monday"
	MonthDay            int           `json:"month_day,omitempty"`     // monthly only, 1-31
	NotificationEnabled bool          `json:"notification_enabled"`
	Ringtone            string        `json:"ringtone,omitempty"`
}

func (s *Schedule) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("schedule id cannot be empty")
	}
	if s.PrescriptionID == "" {
		return fmt.Errorf("schedule prescription id cannot be empty")
	}

	if _, err := time.Parse(constants.TimeFormat, s.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	switch s.Repeat {
	case RepeatDaily:
	case RepeatEveryXDays:
		if s.IntervalDays < 1 {
			return fmt.Errorf("interval must be at least 1 for every_x_days repeat")
		}
	case RepeatWeekly:
		if _, ok := ParseWeekday(s.Weekday); !ok {
			return fmt.Errorf("invalid weekday %q for weekly repeat", s.Weekday)
		}
	case RepeatMonthly:
		if s.MonthDay < 1 || s.MonthDay > 31 {
			return fmt.Errorf("month day must be between 1 and 31, got %d", s.MonthDay)
		}
	default:
		return fmt.Errorf("unknown repeat pattern: %s", s.Repeat)
	}

	return nil
}

// ClampInterval normalizes an every-N-days interval into the accepted
// range at the input boundary. The due evaluator keeps its own guard for
// values that slip through.
func ClampInterval(days int) int {
	if days < constants.MinIntervalDays {
		return constants.MinIntervalDays
	}
	if days > constants.MaxIntervalDays {
		return constants.MaxIntervalDays
	}
	return days
}

// ParseWeekday maps a symbolic weekday name ("monday", "mon") to a
// time.Weekday. The second return value is false when the name is not
// recognized.
func ParseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sun", "sunday":
		return time.Sunday, true
	case "mon", "monday":
		return time.Monday, true
	case "tue", "tuesday":
		return time.Tuesday, true
	case "wed", "wednesday":
		return time.Wednesday, true
	case "thu", "thursday":
		return time.Thursday, true
	case "fri", "friday":
		return time.Friday, true
	case "sat", "saturday":
		return time.Saturday, true
	}
	return time.Sunday, false
}
