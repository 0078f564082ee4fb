// Package health maps time since the quit date onto the recovery milestone timeline.
package health

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/cloudcontrol/internal/models"
)

// Progress summarizes where the user is on the milestone timeline
type Progress struct {
	HoursElapsed   float64                 `json:"hoursElapsed"`
	Achieved       int                     `json:"achieved"`
	Total          int                     `json:"total"`
	Next           *models.HealthMilestone `json:"next,omitempty"`
	HoursRemaining float64                 `json:"hoursRemaining"`
	TimeRemaining  string                  `json:"timeRemaining,omitempty"`
}

// Complete reports whether every milestone has been reached.
func (p Progress) Complete() bool {
	return p.Next == nil
}

// HoursSince returns the hours elapsed between quitDate and now.
func HoursSince(quitDate, now time.Time) float64 {
	return now.Sub(quitDate).Hours()
}

// ProgressAt computes milestone progress over an explicit milestone list, which must
// be sorted by Hours ascending.
func ProgressAt(milestones []models.HealthMilestone, quitDate, now time.Time) Progress {
	elapsed := HoursSince(quitDate, now)
	p := Progress{HoursElapsed: elapsed, Total: len(milestones)}
	for i, m := range milestones {
		if m.Hours <= elapsed {
			p.Achieved++
			continue
		}
		if p.Next == nil {
			next := milestones[i]
			p.Next = &next
		}
	}
	if p.Next != nil {
		p.HoursRemaining = p.Next.Hours - elapsed
		p.TimeRemaining = FormatTimeRemaining(p.HoursRemaining)
	}
	return p
}

// CurrentProgress computes progress over the standard milestone timeline.
func CurrentProgress(quitDate, now time.Time) Progress {
	return ProgressAt(models.HealthMilestones, quitDate, now)
}

// Reached reports whether milestone m has been reached.
func Reached(m models.HealthMilestone, quitDate, now time.Time) bool {
	return m.Hours <= HoursSince(quitDate, now)
}

// FormatTimeRemaining renders a number of hours at the coarsest sensible unit. Each
// unit is rounded before it is compared, so 167h reads as 1w rather than 7d.
func FormatTimeRemaining(hours float64) string {
	if hours < 1 {
		return "less than an hour"
	}
	if hours < 24 {
		return fmt.Sprintf("%dh", int(math.Round(hours)))
	}
	days := math.Round(hours / 24)
	if days < 7 {
		return fmt.Sprintf("%dd", int(days))
	}
	weeks := math.Round(days / 7)
	if weeks < 5 {
		return fmt.Sprintf("%dw", int(weeks))
	}
	return fmt.Sprintf("%dmo", int(math.Round(days/30)))
}

// DaysUntil returns the whole days left until the quit date, rounded up and never negative.
func DaysUntil(quitDate, now time.Time) int {
	days := int(math.Ceil(quitDate.Sub(now).Hours() / 24))
	return max(0, days)
}
