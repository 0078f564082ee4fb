// Package checkin records the once-per-day "did you stick to the rules?" answer.
package checkin

import (
	"time"

	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/utils"
)

// Add appends today's check-in. The first check-in of a day wins: when one already
// exists the collection is returned unchanged and the second value is false.
func Add(checkins []models.CheckIn, stuckToRules bool, now time.Time) ([]models.CheckIn, bool) {
	out := make([]models.CheckIn, len(checkins), len(checkins)+1)
	copy(out, checkins)

	if Today(checkins, now) != nil {
		return out, false
	}

	out = append(out, models.CheckIn{
		Date:         utils.DayKey(now),
		StuckToRules: stuckToRules,
		Timestamp:    now,
	})
	return out, true
}

// Today returns the check-in for now's local day, or nil.
func Today(checkins []models.CheckIn, now time.Time) *models.CheckIn {
	return ForDay(checkins, utils.DayKey(now))
}

// ForDay returns the check-in recorded for the given day key, or nil.
func ForDay(checkins []models.CheckIn, day string) *models.CheckIn {
	for i := range checkins {
		if checkins[i].Date == day {
			c := checkins[i]
			return &c
		}
	}
	return nil
}
