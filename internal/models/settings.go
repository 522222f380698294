package models

// Settings represents application-wide settings
type Settings struct {
	BackendURL           string `json:"backend_url"`           // base URL of the remote prescription backend
	SoundEnabled         bool   `json:"sound_enabled"`         // whether alarm sound playback is enabled
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether device notifications are enabled
	DefaultRingtone      string `json:"default_ringtone"`      // path to a WAV file, empty for the built-in tone
	RefreshIntervalMin   int    `json:"refresh_interval_min"`  // how often the watch loop re-fetches backend data
	DeviceID             string `json:"device_id"`             // installation identifier, generated on init
}
