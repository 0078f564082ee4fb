package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/cloudcontrol/internal/constants"
)

// Settings represents user preferences that feed the health timeline and reminders
type Settings struct {
	QuitDate             *time.Time     `json:"quitDate"`             // target (or actual) nicotine-free date
	QuitReasons          []string       `json:"quitReasons"`          // personal reasons shown as motivation
	PhaseRewards         map[int]string `json:"phaseRewards"`         // reward promised for completing each phase
	WeeklySpend          float64        `json:"weeklySpend"`          // what vaping used to cost per week
	NotificationsEnabled bool           `json:"notificationsEnabled"` // whether reminders are sent
	NotificationTime     string         `json:"notificationTime"`     // daily check-in reminder time, e.g. "21:00"
}

// DefaultSettings returns the settings of a fresh installation.
func DefaultSettings() Settings {
	s := Settings{}
	ApplyDefaultSettings(&s)
	return s
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.QuitReasons == nil {
		settings.QuitReasons = []string{}
	}
	if settings.PhaseRewards == nil {
		settings.PhaseRewards = map[int]string{}
	}
	if settings.NotificationTime == "" {
		settings.NotificationTime = constants.DefaultNotificationTime
	}
}

// SettingsToMap converts a Settings struct to a map of persisted keys to raw JSON values.
func SettingsToMap(settings Settings) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding settings map: %w", err)
	}
	return out, nil
}

// MapToSettings converts a map of persisted keys to raw JSON values back to a Settings struct.
func MapToSettings(data map[string]json.RawMessage) (Settings, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Settings{}, fmt.Errorf("encoding settings map: %w", err)
	}
	var settings Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	ApplyDefaultSettings(&settings)
	return settings, nil
}

// MergeSettings shallowly overlays partial onto current: every key present in partial
// replaces the current value wholesale, everything else is kept.
func MergeSettings(current Settings, partial map[string]any) (Settings, error) {
	merged, err := SettingsToMap(current)
	if err != nil {
		return Settings{}, err
	}
	for key, value := range partial {
		raw, err := json.Marshal(value)
		if err != nil {
			return Settings{}, fmt.Errorf("encoding %s: %w", key, err)
		}
		merged[key] = raw
	}
	return MapToSettings(merged)
}
