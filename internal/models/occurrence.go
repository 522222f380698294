package models

import "time"

type OccurrenceStatus string

const (
	StatusPending OccurrenceStatus = "pending"
	StatusTaken   OccurrenceStatus = "taken"
	StatusSkipped OccurrenceStatus = "skipped"
)

// Occurrence is a single dose due on a specific date. Occurrences are
// derived fresh on every aggregation pass and never persisted; status
// changes live only for the current session.
type Occurrence struct {
	ID                  string           `json:"id"`
	PrescriptionID      string           `json:"prescription_id"`
	ScheduleID          string           `json:"schedule_id"`
	Date                string           `json:"date"` // YYYY-MM-DD
	Medicine            string           `json:"medicine"`
	Dosage              string           `json:"dosage"`
	Time                string           `json:"time"` // HH:MM
	Trigger             time.Time        `json:"trigger"`
	Status              OccurrenceStatus `json:"status"`
	NotificationEnabled bool             `json:"notification_enabled"`
	Ringtone            string           `json:"ringtone,omitempty"`
}

// Key returns the composite identity of an occurrence: the same
// (prescription, schedule, date) triple always names the same dose.
func (o *Occurrence) Key() string {
	return o.PrescriptionID + "|" + o.ScheduleID + "|" + o.Date
}
