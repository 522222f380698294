package alarms

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dosewatch/dosewatch/internal/cli"
	"github.com/dosewatch/dosewatch/internal/constants"
	"github.com/dosewatch/dosewatch/internal/logger"
	"github.com/dosewatch/dosewatch/internal/notifier"
	"github.com/dosewatch/dosewatch/internal/occurrence"
	"github.com/dosewatch/dosewatch/internal/reminder"
	"github.com/dosewatch/dosewatch/internal/tui/alarm"
)

// WatchCmd runs the foreground alarm loop: it keeps today's reminders
// scheduled, rings the alarm modal when one fires, and rebuilds the set
// on every data refresh and at midnight rollover.
type WatchCmd struct {
	Once bool `help:"Schedule one pass and report, then exit without waiting for alarms."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	refresh := time.Duration(settings.RefreshIntervalMin) * time.Minute
	if refresh <= 0 {
		refresh = time.Duration(constants.DefaultRefreshIntervalMin) * time.Minute
	}

	book := occurrence.NewBook()

	// Fired reminders are queued so only one alarm modal runs at a time.
	fired := make(chan reminder.Reminder, 16)
	platform := reminder.NewTimerPlatform(func(r reminder.Reminder) {
		select {
		case fired <- r:
		default:
			logger.Warn("Dropping fired reminder, queue full", "reminder", r.ID)
		}
	})
	sched := reminder.NewScheduler(platform)

	var banner reminder.Notifier
	tray := notifier.New()
	if tray.Available() {
		banner = reminder.GatedNotifier(tray, func() bool {
			settings, err := ctx.Store.GetSettings()
			if err != nil {
				return true
			}
			return settings.NotificationsEnabled
		})
	} else {
		logger.Info("Tray companion not running, banner notifications disabled")
	}

	ringer := reminder.NewRinger(ctx.Sounds, banner, sched, book, alarm.Run)

	rebuild := func() error {
		prescriptions, schedules, names, fromCache, err := ctx.FetchData()
		if err != nil {
			return err
		}
		if fromCache {
			fmt.Println("Backend unreachable, scheduling from cached data.")
		}

		book.Replace(occurrence.BuildForDate(prescriptions, schedules, names, time.Now()))
		res, err := sched.RescheduleAll(book.All())
		if err != nil {
			return err
		}
		fmt.Printf("%s  %d reminder(s) scheduled, %d skipped, %d failed\n",
			time.Now().Format("15:04"), res.Scheduled, res.Skipped, res.Failed)
		return nil
	}

	if err := rebuild(); err != nil {
		return err
	}
	if c.Once {
		return sched.CancelAll()
	}

	refreshTick := time.NewTicker(refresh)
	defer refreshTick.Stop()
	rollover := time.NewTimer(untilNextMidnight(time.Now()))
	defer rollover.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	fmt.Println("Watching for dose alarms. Press Ctrl+C to stop.")
	for {
		select {
		case r := <-fired:
			ringer.Ring(r)
		case <-refreshTick.C:
			if err := rebuild(); err != nil {
				logger.Warn("Refresh pass failed, keeping current reminders", "error", err)
			}
		case <-rollover.C:
			if err := rebuild(); err != nil {
				logger.Warn("Midnight rebuild failed", "error", err)
			}
			rollover.Reset(untilNextMidnight(time.Now()))
		case <-interrupt:
			fmt.Println("\nStopping.")
			ctx.Sounds.Stop()
			return sched.CancelAll()
		}
	}
}

func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	// A small delay past midnight avoids rebuilding on the stale date.
	return next.Sub(now) + time.Second
}
