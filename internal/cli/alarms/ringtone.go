package alarms

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dosewatch/dosewatch/internal/cli"
)

// RingtoneSetCmd stores a per-schedule ringtone override. Overrides are
// device-local and layered over whatever the backend reports.
type RingtoneSetCmd struct {
	ScheduleID string `arg:"" help:"Schedule id to attach the ringtone to."`
	Path       string `arg:"" help:"Path to a WAV file."`
}

func (c *RingtoneSetCmd) Run(ctx *cli.Context) error {
	path, err := filepath.Abs(c.Path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(filepath.Ext(path), ".wav") {
		return fmt.Errorf("ringtone must be a WAV file, got %s", filepath.Ext(path))
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("ringtone file not accessible: %w", err)
	}

	if err := ctx.Store.SetRingtone(c.ScheduleID, path); err != nil {
		return err
	}
	fmt.Printf("Ringtone for schedule %s set to %s\n", c.ScheduleID, path)
	return nil
}

type RingtoneListCmd struct{}

func (c *RingtoneListCmd) Run(ctx *cli.Context) error {
	ringtones, err := ctx.Store.GetAllRingtones()
	if err != nil {
		return err
	}
	if len(ringtones) == 0 {
		fmt.Println("No ringtone overrides set.")
		return nil
	}

	fmt.Println("Ringtone overrides:")
	for scheduleID, path := range ringtones {
		fmt.Printf("  %s: %s\n", scheduleID, path)
	}
	return nil
}

type RingtoneClearCmd struct {
	ScheduleID string `arg:"" help:"Schedule id to clear the override for."`
}

func (c *RingtoneClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ClearRingtone(c.ScheduleID); err != nil {
		return err
	}
	fmt.Printf("Ringtone override cleared for schedule %s\n", c.ScheduleID)
	return nil
}
