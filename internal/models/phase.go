package models

import (
	"time"

	"github.com/julianstephens/cloudcontrol/internal/constants"
)

// PhaseData is the persisted progress through the behavior-change program
type PhaseData struct {
	CurrentPhase    int               `json:"currentPhase"`
	PhaseStartedAt  *time.Time        `json:"phaseStartedAt"` // nil until the user starts the current phase
	PhaseStartDates map[int]time.Time `json:"phaseStartDates"`
	CompletedPhases []int             `json:"completedPhases"`
}

// DefaultPhaseData returns the state of a fresh installation: phase 1 unlocked but not started.
func DefaultPhaseData(now time.Time) PhaseData {
	return PhaseData{
		CurrentPhase:    constants.FirstPhase,
		PhaseStartDates: map[int]time.Time{constants.FirstPhase: now},
		CompletedPhases: []int{},
	}
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (p PhaseData) Clone() PhaseData {
	out := PhaseData{
		CurrentPhase:    p.CurrentPhase,
		PhaseStartDates: make(map[int]time.Time, len(p.PhaseStartDates)),
		CompletedPhases: make([]int, len(p.CompletedPhases)),
	}
	if p.PhaseStartedAt != nil {
		t := *p.PhaseStartedAt
		out.PhaseStartedAt = &t
	}
	for k, v := range p.PhaseStartDates {
		out.PhaseStartDates[k] = v
	}
	copy(out.CompletedPhases, p.CompletedPhases)
	return out
}

// Phase describes one stage of the program
type Phase struct {
	ID            int
	Name          string
	Weeks         string
	DurationWeeks int
	Rules         []string
	Goal          string
}

// RequiredDays is the minimum number of days a phase must run before it can be completed
func (p Phase) RequiredDays() int {
	return p.DurationWeeks * 7
}

// Phases is the fixed, ordered program.
var Phases = []Phase{
	{
		ID:            1,
		Name:          "Break Night & Coding Dependency",
		Weeks:         "Week 1",
		DurationWeeks: 1,
		Rules: []string{
			"No vape in the bedroom. The vape sleeps in another room.",
			"If you wake at night, stay in bed. If you choose to vape, you must stand while using it.",
			"No vaping while coding. If you want it, stand up, go to a designated spot, take max 5 drags, and put it back.",
		},
		Goal: "Break autopilot behavior and reduce total intake naturally.",
	},
	{
		ID:            2,
		Name:          "Lower Nicotine Strength",
		Weeks:         "Weeks 2-3",
		DurationWeeks: 2,
		Rules: []string{
			"Reduce nicotine strength by one level.",
			"Keep the same flavor to avoid stacking changes.",
			"Expect mild irritability for a few days while stabilizing.",
			"Stay at this level for two weeks before moving on.",
		},
		Goal: "Lower nicotine dependency gradually.",
	},
	{
		ID:            3,
		Name:          "Introduce Time Windows",
		Weeks:         "Weeks 4-6",
		DurationWeeks: 3,
		Rules: []string{
			"Only vape after meals, OR every 2 hours, OR set a max number of sessions per day.",
			"Skip every second craving to retrain your response system.",
		},
		Goal: "Reduce frequency and retrain craving response.",
	},
	{
		ID:            4,
		Name:          "Micro-Quit",
		Weeks:         "Weeks 7-10",
		DurationWeeks: 4,
		Rules: []string{
			"Nicotine strength is low and frequency is controlled.",
			"Choose a quit date.",
			"Remove the vape completely.",
			"Expect mild discomfort for a few days. This is normal and temporary.",
		},
		Goal: "Become completely nicotine-free.",
	},
}

// GetPhase returns the catalog entry for id.
func GetPhase(id int) (Phase, bool) {
	for _, p := range Phases {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}

// ReplacementStrategies are things to do instead of vaping when a craving hits
var ReplacementStrategies = []string{
	"Mint gum or flavored toothpicks",
	"Sparkling water or herbal tea",
	"10 squats or 1-minute stretch",
	"Step outside for fresh air without nicotine",
	"Pet your cats intentionally for a grounding reset",
}
