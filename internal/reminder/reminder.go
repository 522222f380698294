package reminder

import "time"

// State tracks a reminder through its lifecycle. Transitions:
// unscheduled -> scheduled -> fired -> dismissed | snoozed | taken;
// snoozed re-enters scheduled and fires again after the snooze delay.
// Every re-scheduling pass cancels all scheduled reminders first.
type State string

const (
	StateUnscheduled State = "unscheduled"
	StateScheduled   State = "scheduled"
	StateFired       State = "fired"
	StateCancelled   State = "cancelled"
	StateDismissed   State = "dismissed"
	StateSnoozed     State = "snoozed"
	StateTaken       State = "taken"
)

// Reminder is a platform-level pending notification entry, one-to-one
// with a pending, notification-enabled, future-dated occurrence at the
// moment scheduling ran.
type Reminder struct {
	ID           string
	OccurrenceID string
	Trigger      time.Time
	Title        string
	Body         string
	Ringtone     string
}

// Platform is the device scheduling facility. Registration failures are
// recoverable per-call; cancellation is always unconditional and total.
type Platform interface {
	// Schedule registers a reminder to fire at its trigger instant.
	Schedule(r Reminder) error
	// CancelAll drops every pending reminder. It must fully complete
	// before any subsequent Schedule call, so that no window exists in
	// which old and new reminders coexist.
	CancelAll() error
	// PendingCount reports the number of currently registered reminders.
	PendingCount() int
}
