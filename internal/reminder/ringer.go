package reminder

import (
	"github.com/dosewatch/dosewatch/internal/logger"
	"github.com/dosewatch/dosewatch/internal/occurrence"
	"github.com/dosewatch/dosewatch/internal/sound"
)

// Action is the user's choice in the ringing alarm UI.
type Action int

const (
	ActionDismiss Action = iota
	ActionSnooze
	ActionTaken
)

// Notifier delivers a banner notification; delivery failure is
// best-effort and never blocks the alarm experience.
type Notifier interface {
	Notify(title, body string) error
}

// PromptFunc presents the ringing alarm to the user and blocks until an
// action is chosen. The watch loop injects the terminal modal here; tests
// inject a canned answer.
type PromptFunc func(r Reminder) (Action, error)

type gatedNotifier struct {
	inner   Notifier
	enabled func() bool
}

// GatedNotifier wraps delivery behind the notifications-enabled
// preference. The preference is consulted on every delivery, so a
// settings change takes effect on the next alarm without restarting.
func GatedNotifier(inner Notifier, enabled func() bool) Notifier {
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &gatedNotifier{inner: inner, enabled: enabled}
}

func (g *gatedNotifier) Notify(title, body string) error {
	if !g.enabled() {
		return nil
	}
	return g.inner.Notify(title, body)
}

// Ringer drives the alarm-ringing experience when a reminder fires:
// banner notification, looping sound, modal prompt, and the follow-up
// for whichever action the user picks.
type Ringer struct {
	sounds   *sound.Engine
	notifier Notifier
	sched    *Scheduler
	book     *occurrence.Book
	prompt   PromptFunc
}

func NewRinger(sounds *sound.Engine, notifier Notifier, sched *Scheduler, book *occurrence.Book, prompt PromptFunc) *Ringer {
	return &Ringer{
		sounds:   sounds,
		notifier: notifier,
		sched:    sched,
		book:     book,
		prompt:   prompt,
	}
}

// Ring handles a fired reminder end to end. Playback is stopped on every
// exit path: dismiss, snooze, taken, and prompt failure all silence the
// alarm.
func (g *Ringer) Ring(r Reminder) {
	g.sched.MarkFired(r)
	defer g.sounds.Stop()

	if g.notifier != nil {
		if err := g.notifier.Notify(r.Title, r.Body); err != nil {
			// Silent by design: a missing banner is logged, not alerted.
			logger.Warn("Notification delivery failed", "reminder", r.ID, "error", err)
		}
	}

	if err := g.sounds.Play(r.Ringtone); err != nil {
		logger.Warn("Alarm sound unavailable", "reminder", r.ID, "error", err)
	}

	action, err := g.prompt(r)
	if err != nil {
		logger.Error("Alarm prompt failed, dismissing", "reminder", r.ID, "error", err)
		g.sched.Dismiss(r)
		return
	}

	switch action {
	case ActionSnooze:
		g.sounds.Stop()
		if err := g.sched.Snooze(r); err != nil {
			logger.Warn("Failed to snooze reminder", "reminder", r.ID, "error", err)
		}
	case ActionTaken:
		g.sounds.Stop()
		g.sched.MarkTaken(r)
		if err := g.book.MarkTaken(r.OccurrenceID); err != nil {
			logger.Warn("Failed to mark occurrence taken", "occurrence", r.OccurrenceID, "error", err)
		}
	default:
		g.sounds.Stop()
		g.sched.Dismiss(r)
	}
}
