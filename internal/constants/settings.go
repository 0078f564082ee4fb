package constants

const (
	// Settings keys, as persisted
	SettingQuitDate             = "quitDate"
	SettingQuitReasons          = "quitReasons"
	SettingPhaseRewards         = "phaseRewards"
	SettingWeeklySpend          = "weeklySpend"
	SettingNotificationsEnabled = "notificationsEnabled"
	SettingNotificationTime     = "notificationTime"
)
