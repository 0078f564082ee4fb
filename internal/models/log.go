package models

import (
	"time"

	"github.com/julianstephens/cloudcontrol/internal/constants"
)

// LogEntry represents a single craving or vape session. Entries are never edited
// or removed once recorded.
type LogEntry struct {
	ID          string             `json:"id" validate:"required"`
	Type        constants.LogType  `json:"type" validate:"required,oneof=craving vape_session"`
	Timestamp   time.Time          `json:"timestamp"`
	Trigger     string             `json:"trigger,omitempty" validate:"omitempty,lowercase,max=64"`
	Location    constants.Location `json:"location" validate:"required,oneof=bed coding designated_spot other"`
	IsNightWake bool               `json:"isNightWake"`
	DragCount   *int               `json:"dragCount" validate:"omitempty,min=1,max=10"` // only set for vape sessions
}

// IsSession reports whether the entry is a vape session
func (e LogEntry) IsSession() bool {
	return e.Type == constants.LogTypeVapeSession
}

// Purchase represents money spent on vaping supplies
type Purchase struct {
	ID        string    `json:"id" validate:"required"`
	Amount    float64   `json:"amount" validate:"gt=0"`
	Timestamp time.Time `json:"timestamp"`
}

// CheckIn represents the once-daily answer to "did you stick to the rules today?"
type CheckIn struct {
	Date         string    `json:"date"` // YYYY-MM-DD format, local day
	StuckToRules bool      `json:"stuckToRules"`
	Timestamp    time.Time `json:"timestamp"`
}
