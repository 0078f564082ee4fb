package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/cloudcontrol/internal/models"
)

// SpendingSummary totals recorded purchases
type SpendingSummary struct {
	Total          float64 `json:"total"`
	Count          int     `json:"count"`
	DaysSinceFirst int     `json:"daysSinceFirst"`
}

// LastSession returns the most recent vape session.
func LastSession(logs []models.LogEntry) (models.LogEntry, bool) {
	var last models.LogEntry
	found := false
	for _, l := range logs {
		if !l.IsSession() {
			continue
		}
		if !found || l.Timestamp.After(last.Timestamp) {
			last = l
			found = true
		}
	}
	return last, found
}

// TimeSinceLastSession returns how long ago the most recent vape session was.
// The second return value is false when no session has been logged.
func TimeSinceLastSession(logs []models.LogEntry, now time.Time) (time.Duration, bool) {
	last, ok := LastSession(logs)
	if !ok {
		return 0, false
	}
	d := now.Sub(last.Timestamp)
	if d < 0 {
		d = 0
	}
	return d, true
}

// FormatSince renders a duration as "3h 12m", or "45m" under an hour.
func FormatSince(d time.Duration) string {
	mins := int(math.Floor(d.Minutes()))
	if mins < 0 {
		mins = 0
	}
	hrs := mins / 60
	if hrs > 0 {
		return fmt.Sprintf("%dh %dm", hrs, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}

// Spending totals purchases and reports how many whole days have passed since the
// earliest one (at least 1).
func Spending(purchases []models.Purchase, now time.Time) SpendingSummary {
	if len(purchases) == 0 {
		return SpendingSummary{}
	}

	summary := SpendingSummary{Count: len(purchases)}
	first := purchases[0].Timestamp
	for _, p := range purchases {
		summary.Total += p.Amount
		if p.Timestamp.Before(first) {
			first = p.Timestamp
		}
	}

	days := int(math.Floor(now.Sub(first).Hours() / 24))
	if days < 1 {
		days = 1
	}
	summary.DaysSinceFirst = days
	return summary
}
