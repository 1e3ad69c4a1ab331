package constants

const (
	// Reminder settings document fields
	SettingEnabled    = "enabled"
	SettingTimes      = "times"
	SettingMessage    = "message"
	SettingLegacyTime = "time"

	// Default reminder settings
	DefaultReminderEnabled = false
	DefaultReminderTime    = "09:00"
	DefaultReminderMessage = "Time to crush it! 💪"

	// Config file keys
	ConfigStore               = "store"
	ConfigTimezone            = "timezone"
	ConfigDebug               = "debug"
	ConfigReminderInterval    = "reminder_interval"
	ConfigSystemNotifications = "system_notifications"
	ConfigTrayAppIdentifier   = "tray_app_identifier"

	DefaultTimezone = "Local" // Use system local timezone by default
)
