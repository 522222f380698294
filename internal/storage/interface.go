package storage

import "github.com/dosewatch/dosewatch/internal/models"

// Provider is the local persistence surface: settings, per-schedule
// ringtone picks, and an advisory cache of the last successful backend
// fetch. The backend remains the source of truth for prescriptions and
// schedules; nothing dose-related is persisted here.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Ringtones (best-effort per-schedule preference)
	GetRingtone(scheduleID string) (string, error)
	SetRingtone(scheduleID, path string) error
	ClearRingtone(scheduleID string) error
	GetAllRingtones() (map[string]string, error)

	// Backend data cache
	SaveCache(prescriptions []models.Prescription, schedules []models.Schedule, medicineNames map[string]string) error
	LoadCache() ([]models.Prescription, []models.Schedule, map[string]string, error)

	// Utils
	GetConfigPath() string
}
