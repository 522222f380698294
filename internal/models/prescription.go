package models

import (
	"fmt"
	"time"

	"github.com/dosewatch/dosewatch/internal/constants"
)

// Prescription is a course of medication owned by the backend. The core
// treats it as read-only input.
type Prescription struct {
	ID              string `json:"id"`
	MedicineID      string `json:"medicine_id"`
	Dosage          string `json:"dosage"`
	FrequencyPerDay int    `json:"frequency_per_day,omitempty"`
	StartDate       string `json:"start_date"` // YYYY-MM-DD, inclusive
	EndDate         string `json:"end_date"`   // YYYY-MM-DD, inclusive
	Notes           string `json:"notes,omitempty"`
}

func (p *Prescription) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("prescription id cannot be empty")
	}

	start, err := time.Parse(constants.DateFormat, p.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date (expected YYYY-MM-DD): %w", err)
	}
	end, err := time.Parse(constants.DateFormat, p.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date (expected YYYY-MM-DD): %w", err)
	}

	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", p.EndDate, p.StartDate)
	}

	return nil
}

// ActiveOn reports whether the prescription covers the given date. Both
// boundary dates are inclusive. Malformed dates make the prescription
// inactive rather than erroring.
func (p *Prescription) ActiveOn(date time.Time) bool {
	start, err := time.Parse(constants.DateFormat, p.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse(constants.DateFormat, p.EndDate)
	if err != nil {
		return false
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end)
}
