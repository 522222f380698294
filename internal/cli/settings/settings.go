package settings

import (
	"fmt"

	"github.com/dosewatch/dosewatch/internal/cli"
	"github.com/dosewatch/dosewatch/internal/constants"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	BackendURL           *string `help:"Base URL of the prescription backend."`
	SoundEnabled         *bool   `help:"Enable or disable alarm sound playback."`
	NotificationsEnabled *bool   `help:"Enable or disable device notifications."`
	DefaultRingtone      *string `help:"Default WAV ringtone path. Empty for the built-in tone."`
	RefreshIntervalMin   *int    `help:"Minutes between backend refreshes in watch mode."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Backend URL:           %s\n", settings.BackendURL)
		fmt.Printf("  Sound Enabled:         %v\n", settings.SoundEnabled)
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		ringtone := settings.DefaultRingtone
		if ringtone == "" {
			ringtone = "(built-in tone)"
		}
		fmt.Printf("  Default Ringtone:      %s\n", ringtone)
		fmt.Printf("  Refresh Interval:      %d min\n", settings.RefreshIntervalMin)
		fmt.Printf("  Snooze Delay:          %d min (fixed)\n", int(constants.SnoozeDelay.Minutes()))
		fmt.Printf("  Device ID:             %s\n", settings.DeviceID)
		return nil
	}

	updated := false
	if c.BackendURL != nil {
		settings.BackendURL = *c.BackendURL
		updated = true
	}
	if c.SoundEnabled != nil {
		settings.SoundEnabled = *c.SoundEnabled
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.DefaultRingtone != nil {
		settings.DefaultRingtone = *c.DefaultRingtone
		updated = true
	}
	if c.RefreshIntervalMin != nil {
		if *c.RefreshIntervalMin < 1 {
			return fmt.Errorf("refresh interval must be at least 1 minute")
		}
		settings.RefreshIntervalMin = *c.RefreshIntervalMin
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
