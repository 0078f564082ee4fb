package constants

import "time"

// LogType represents the kind of event recorded in the log
type LogType string

// Location represents where a logged event happened
type Location string

// PhaseStatus represents how a phase relates to the user's progress
type PhaseStatus string

const (
	AppName            = "cloudcontrol"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/cloudcontrol/cloudcontrol.db"
	ConfigEnvVar       = "CLOUDCONTROL_CONFIG"
	ConnectionEnvVar   = "CLOUDCONTROL_DB_CONNECTION"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Persistence keys
	KeyLogs      = "logs"
	KeyPhase     = "phase"
	KeySettings  = "settings"
	KeyCheckins  = "checkins"
	KeyPurchases = "purchases"

	// Log types
	LogTypeCraving     LogType = "craving"
	LogTypeVapeSession LogType = "vape_session"

	// Locations
	LocationBed            Location = "bed"
	LocationCoding         Location = "coding"
	LocationDesignatedSpot Location = "designated_spot"
	LocationOther          Location = "other"

	// Drag count bounds for a vape session
	MinDragCount     = 1
	MaxDragCount     = 10
	DefaultDragCount = 3

	// Log defaults
	DefaultTrigger  = "craving"
	DefaultLocation = LocationOther

	// Phase constants
	FirstPhase = 1
	FinalPhase = 4

	PhaseStatusCompleted PhaseStatus = "completed"
	PhaseStatusCurrent   PhaseStatus = "current"
	PhaseStatusLocked    PhaseStatus = "locked"

	// Stats windows
	MaxStreakDays     = 365
	DefaultWindowDays = 7
	DefaultTrendDays  = 14
	SummaryDays       = 7

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "cloudcontrol-"

	// Settings defaults
	DefaultNotificationTime = "21:00"
	MotivationLeadTime      = time.Hour
)

// KeysForReset lists every persisted collection cleared by a reset.
var KeysForReset = []string{KeyLogs, KeyPhase, KeySettings, KeyCheckins, KeyPurchases}

// Triggers are the suggested trigger labels. Any lower-case label is accepted.
var Triggers = []string{"craving", "habit", "stress", "boredom", "social", "other"}

// Locations lists the valid locations in display order.
var Locations = []Location{LocationBed, LocationCoding, LocationDesignatedSpot, LocationOther}
