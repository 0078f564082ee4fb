// Package phase implements the four-phase program state machine.
//
// Transitions are pure: they take the persisted PhaseData and return an updated
// copy plus whether anything changed. Duration gating is advisory and lives in
// Eligibility; Advance itself only refuses to move past the final phase.
package phase

import (
	"math"
	"slices"
	"time"

	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/models"
)

// Gate describes whether the current phase has run long enough to be completed
type Gate struct {
	Started       bool `json:"started"`
	DayCount      int  `json:"dayCount"`
	RequiredDays  int  `json:"requiredDays"`
	DaysRemaining int  `json:"daysRemaining"`
	CanComplete   bool `json:"canComplete"`
}

// Start marks the current phase as started at now. Once started the clock is never
// reset, so a repeated call returns the data unchanged and false.
func Start(data models.PhaseData, now time.Time) (models.PhaseData, bool) {
	out := data.Clone()
	if out.PhaseStartedAt != nil {
		return out, false
	}
	started := now
	out.PhaseStartedAt = &started
	return out, true
}

// Advance completes the current phase and unlocks the next one, unstarted.
// It is a no-op at or beyond the final phase.
func Advance(data models.PhaseData, now time.Time) (models.PhaseData, bool) {
	out := data.Clone()
	if out.CurrentPhase >= constants.FinalPhase {
		return out, false
	}
	if out.CurrentPhase < constants.FirstPhase {
		out.CurrentPhase = constants.FirstPhase
	}

	if !slices.Contains(out.CompletedPhases, out.CurrentPhase) {
		out.CompletedPhases = append(out.CompletedPhases, out.CurrentPhase)
	}
	out.CurrentPhase++
	out.PhaseStartedAt = nil
	if _, ok := out.PhaseStartDates[out.CurrentPhase]; !ok {
		out.PhaseStartDates[out.CurrentPhase] = now
	}
	return out, true
}

// Eligibility computes the completion gate for a phase started at startedAt that
// must run for durationWeeks. Day one is the start day itself.
func Eligibility(startedAt *time.Time, durationWeeks int, now time.Time) Gate {
	gate := Gate{RequiredDays: durationWeeks * 7}
	if startedAt == nil {
		gate.DaysRemaining = gate.RequiredDays
		return gate
	}

	gate.Started = true
	gate.DayCount = DayCount(*startedAt, now)
	gate.DaysRemaining = max(0, gate.RequiredDays-gate.DayCount)
	gate.CanComplete = gate.DayCount >= gate.RequiredDays
	return gate
}

// CurrentGate is Eligibility for data's current phase.
func CurrentGate(data models.PhaseData, now time.Time) Gate {
	p, ok := models.GetPhase(data.CurrentPhase)
	if !ok {
		return Gate{}
	}
	return Eligibility(data.PhaseStartedAt, p.DurationWeeks, now)
}

// DayCount is the 1-based number of elapsed 24h periods since startedAt.
func DayCount(startedAt, now time.Time) int {
	days := int(math.Floor(now.Sub(startedAt).Hours()/24)) + 1
	return max(1, days)
}

// Status reports whether phaseID is completed, current or still locked.
func Status(data models.PhaseData, phaseID int) constants.PhaseStatus {
	if slices.Contains(data.CompletedPhases, phaseID) {
		return constants.PhaseStatusCompleted
	}
	if phaseID == data.CurrentPhase {
		return constants.PhaseStatusCurrent
	}
	return constants.PhaseStatusLocked
}

// IsFinal reports whether data is on the last phase of the program.
func IsFinal(data models.PhaseData) bool {
	return data.CurrentPhase >= constants.FinalPhase
}
