package reminder

import (
	"fmt"
	"sync"
	"time"
)

// TimerPlatform is the in-process scheduling facility: one time.AfterFunc
// timer per reminder, all cancellable as a unit. It stands in for an OS
// notification scheduler when the app runs its own foreground watch loop.
type TimerPlatform struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	fire   func(Reminder)
}

// NewTimerPlatform creates a timer-backed platform. fire is invoked from
// the timer goroutine when a reminder's trigger instant arrives.
func NewTimerPlatform(fire func(Reminder)) *TimerPlatform {
	return &TimerPlatform{
		timers: make(map[string]*time.Timer),
		fire:   fire,
	}
}

func (p *TimerPlatform) Schedule(r Reminder) error {
	until := time.Until(r.Trigger)
	if until <= 0 {
		return fmt.Errorf("trigger instant %s is not in the future", r.Trigger.Format(time.RFC3339))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.timers[r.ID]; exists {
		return fmt.Errorf("reminder %s is already scheduled", r.ID)
	}

	p.timers[r.ID] = time.AfterFunc(until, func() {
		p.mu.Lock()
		delete(p.timers, r.ID)
		p.mu.Unlock()
		p.fire(r)
	})

	return nil
}

// CancelAll stops every pending timer. A timer that already fired and is
// waiting on the fire callback is past cancellation; that is the same
// race any OS facility has, and the scheduler's state map absorbs it.
func (p *TimerPlatform) CancelAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id, timer := range p.timers {
		timer.Stop()
		delete(p.timers, id)
	}
	return nil
}

func (p *TimerPlatform) PendingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.timers)
}
