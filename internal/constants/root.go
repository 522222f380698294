package constants

import "time"

const (
	AppName           = "dosewatch"
	Version           = "v0.3.1"
	DefaultConfigPath = "~/.config/dosewatch/dosewatch.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Keyring constants
	KeyringService = "dosewatch"
	KeyringUser    = "backend-token"
	APITokenEnvVar = "DOSEWATCH_API_TOKEN"

	// Notify constants
	NotifierLockfileName   = "dosewatch-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.dosewatch.tray"

	// Reminder constants
	SnoozeDelay = 5 * time.Minute

	// Sound constants
	PreviewTimeout = 30 * time.Second

	// Interval bounds for every-N-days schedules. Values outside the range
	// are clamped at the input layer; the evaluator has its own guard.
	MinIntervalDays = 2
	MaxIntervalDays = 365
)
