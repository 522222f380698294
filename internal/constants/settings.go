package constants

const (
	// Settings keys
	SettingBackendURL           = "backend_url"
	SettingSoundEnabled         = "sound_enabled"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingDefaultRingtone      = "default_ringtone"
	SettingRefreshIntervalMin   = "refresh_interval_min"
	SettingDeviceID             = "device_id"

	// Default Settings Values
	DefaultSoundEnabled         = true
	DefaultNotificationsEnabled = true
	DefaultRefreshIntervalMin   = 15
)
