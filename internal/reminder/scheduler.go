package reminder

import (
	"fmt"
	"sync"
	"time"

	"github.com/dosewatch/dosewatch/internal/constants"
	"github.com/dosewatch/dosewatch/internal/logger"
	"github.com/dosewatch/dosewatch/internal/models"
)

// Scheduler keeps the platform's pending reminders consistent with the
// current occurrence list via an unconditional cancel-then-rebuild pass.
// Rebuilding everything on every data change trades efficiency for the
// guarantee that no stale reminder survives.
type Scheduler struct {
	platform Platform
	clock    func() time.Time

	mu     sync.Mutex
	states map[string]State
}

type Option func(*Scheduler)

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Scheduler) { s.clock = clock }
}

func NewScheduler(platform Platform, opts ...Option) *Scheduler {
	s := &Scheduler{
		platform: platform,
		clock:    time.Now,
		states:   make(map[string]State),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result summarizes one re-scheduling pass.
type Result struct {
	Scheduled int
	Skipped   int
	Failed    int
}

// RescheduleAll cancels every pending reminder, then registers exactly
// one reminder per occurrence that is pending, notification-enabled and
// future-dated. Cancellation fully completes before the first new
// registration; past-dated or disabled occurrences are skipped silently.
// Per-reminder registration failures degrade that reminder only.
func (s *Scheduler) RescheduleAll(occurrences []models.Occurrence) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.platform.CancelAll(); err != nil {
		return Result{}, fmt.Errorf("failed to cancel pending reminders: %w", err)
	}
	for id, state := range s.states {
		if state == StateScheduled {
			s.states[id] = StateCancelled
		}
	}

	now := s.clock()
	var res Result
	for _, occ := range occurrences {
		if !occ.NotificationEnabled || occ.Status != models.StatusPending || !occ.Trigger.After(now) {
			res.Skipped++
			continue
		}

		r := Reminder{
			ID:           occ.ID,
			OccurrenceID: occ.ID,
			Trigger:      occ.Trigger,
			Title:        "Time for " + occ.Medicine,
			Body:         fmt.Sprintf("%s at %s", occ.Dosage, occ.Time),
			Ringtone:     occ.Ringtone,
		}

		if err := s.platform.Schedule(r); err != nil {
			logger.Warn("Failed to schedule reminder", "occurrence", occ.ID, "error", err)
			res.Failed++
			continue
		}
		s.states[r.ID] = StateScheduled
		res.Scheduled++
	}

	logger.Debug("Rebuilt reminders",
		"scheduled", res.Scheduled, "skipped", res.Skipped, "failed", res.Failed)
	return res, nil
}

// CancelAll drops every pending reminder without rebuilding. Used when an
// occurrence changes status to taken or skipped ahead of the next pass.
func (s *Scheduler) CancelAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.platform.CancelAll(); err != nil {
		return err
	}
	for id, state := range s.states {
		if state == StateScheduled {
			s.states[id] = StateCancelled
		}
	}
	return nil
}

// MarkFired records that the platform invoked the reminder.
func (s *Scheduler) MarkFired(r Reminder) {
	s.setState(r.ID, StateFired)
}

// Dismiss records the user dismissing a fired reminder.
func (s *Scheduler) Dismiss(r Reminder) {
	s.setState(r.ID, StateDismissed)
}

// MarkTaken records the user marking the dose taken from the alarm.
func (s *Scheduler) MarkTaken(r Reminder) {
	s.setState(r.ID, StateTaken)
}

// Snooze re-registers the same reminder to fire again after the fixed
// snooze delay. The recurrence evaluator is not consulted again; the
// alarm simply re-presents itself.
func (s *Scheduler) Snooze(r Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.Trigger = s.clock().Add(constants.SnoozeDelay)
	if err := s.platform.Schedule(r); err != nil {
		return fmt.Errorf("failed to schedule snoozed reminder: %w", err)
	}
	s.states[r.ID] = StateSnoozed
	return nil
}

// StateOf returns the lifecycle state of a reminder id.
func (s *Scheduler) StateOf(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.states[id]; ok {
		return state
	}
	return StateUnscheduled
}

func (s *Scheduler) setState(id string, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = state
}
