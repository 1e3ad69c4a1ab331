package constants

import "time"

const (
	AppName            = "fitlog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/fitlog"
	DefaultStorePath   = "~/.config/fitlog/fitlog.db"
	DefaultConfigFile  = "~/.config/fitlog/config.toml"
	Version            = "v0.3.0"

	// DateFormat is the canonical date format for record keys (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the format accepted by --month flags (YYYY-MM)
	MonthFormat = "2006-01"

	// TimeFormat is the reminder slot format (HH:MM, 24h)
	TimeFormat = "15:04"

	// Document keys in the key-value store
	DocWorkouts             = "workouts"
	DocWeights              = "weights"
	DocNotificationSettings = "notificationSettings"

	// Environment variables
	EnvDBConnection = "FITLOG_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "fitlog-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "fitlog-notifier.lock"
	NotificationDurationMs = 5000
	NotificationTitle      = "Workout Reminder 🏋️"
	TrayAppIdentifier      = "com.julianstephens.fitlog"
	TrayExecutablePrefix   = "fitlog-tray"

	// Reminder loop
	DefaultReminderInterval = 60 * time.Second
	InAppBannerDuration     = 5 * time.Second
)
