package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dosewatch/dosewatch/internal/api"
	"github.com/dosewatch/dosewatch/internal/constants"
	"github.com/dosewatch/dosewatch/internal/logger"
	"github.com/dosewatch/dosewatch/internal/models"
	"github.com/dosewatch/dosewatch/internal/sound"
	"github.com/dosewatch/dosewatch/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Sounds *sound.Engine
}

// Backend builds the API client from stored settings and the token in
// the environment or OS keyring.
func (c *Context) Backend() (*api.Client, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.BackendURL == "" {
		return nil, fmt.Errorf("no backend URL configured, run 'dosewatch init' first")
	}

	client, err := api.New(settings.BackendURL, api.LoadToken())
	if err != nil {
		return nil, err
	}
	client.SetDeviceID(settings.DeviceID)
	return client, nil
}

// FetchData pulls prescriptions, schedules and medicine names from the
// backend, refreshing the local cache on success. When the backend is
// unreachable it falls back to the last cached snapshot; fromCache
// reports which source the data came from. Local ringtone overrides are
// applied to the returned schedules.
func (c *Context) FetchData() (prescriptions []models.Prescription, schedules []models.Schedule, names map[string]string, fromCache bool, err error) {
	client, err := c.Backend()
	if err != nil {
		return nil, nil, nil, false, err
	}

	prescriptions, schedules, names, err = fetchAll(client)
	if err != nil {
		logger.Warn("Backend fetch failed, falling back to cache", "error", err)
		prescriptions, schedules, names, cacheErr := c.Store.LoadCache()
		if cacheErr != nil {
			return nil, nil, nil, false, fmt.Errorf("backend unreachable and no cached data: %w", err)
		}
		c.applyRingtoneOverrides(schedules)
		return prescriptions, schedules, names, true, nil
	}

	if err := c.Store.SaveCache(prescriptions, schedules, names); err != nil {
		logger.Warn("Failed to refresh backend cache", "error", err)
	}
	c.applyRingtoneOverrides(schedules)
	return prescriptions, schedules, names, false, nil
}

func fetchAll(client *api.Client) ([]models.Prescription, []models.Schedule, map[string]string, error) {
	prescriptions, err := client.GetPrescriptions()
	if err != nil {
		return nil, nil, nil, err
	}
	schedules, err := client.GetSchedules()
	if err != nil {
		return nil, nil, nil, err
	}
	names, err := client.GetMedicineNames()
	if err != nil {
		return nil, nil, nil, err
	}
	return prescriptions, schedules, names, nil
}

// applyRingtoneOverrides resolves the effective ringtone per schedule:
// a locally stored per-schedule override wins, then the schedule's own
// ringtone, then the configured default. Empty means the built-in tone.
func (c *Context) applyRingtoneOverrides(schedules []models.Schedule) {
	overrides, err := c.Store.GetAllRingtones()
	if err != nil {
		logger.Warn("Failed to load ringtone overrides", "error", err)
		overrides = nil
	}

	var fallback string
	if settings, err := c.Store.GetSettings(); err == nil {
		fallback = settings.DefaultRingtone
	}

	for i := range schedules {
		if path, ok := overrides[schedules[i].ID]; ok {
			schedules[i].Ringtone = path
		}
		if schedules[i].Ringtone == "" {
			schedules[i].Ringtone = fallback
		}
	}
}

// ParseDate parses a YYYY-MM-DD flag value, defaulting to today.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	date, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return date, nil
}

// FormatRepeat formats a schedule's repeat pattern into a human-readable string
func FormatRepeat(s models.Schedule) string {
	switch s.Repeat {
	case models.RepeatDaily:
		return "daily"
	case models.RepeatEveryXDays:
		return fmt.Sprintf("every %d days", s.IntervalDays)
	case models.RepeatWeekly:
		if len(s.Weekday) >= 3 {
			return "weekly on " + strings.ToLower(s.Weekday)[:3]
		}
		return "weekly"
	case models.RepeatMonthly:
		return fmt.Sprintf("monthly on day %d", s.MonthDay)
	default:
		return "unknown"
	}
}

// StatusGlyph maps an occurrence status to its list marker.
func StatusGlyph(status models.OccurrenceStatus) string {
	switch status {
	case models.StatusTaken:
		return "✓"
	case models.StatusSkipped:
		return "⊘"
	default:
		return " "
	}
}
