package checkin

import (
	"testing"
	"time"

	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/utils"
)

var testNow = time.Date(2025, 3, 12, 21, 0, 0, 0, time.Local)

func TestAdd(t *testing.T) {
	checkins, added := Add(nil, true, testNow)
	if !added || len(checkins) != 1 {
		t.Fatalf("Add() = %v, %v; want one check-in added", checkins, added)
	}
	if checkins[0].Date != utils.DayKey(testNow) || !checkins[0].StuckToRules {
		t.Errorf("Add() stored %+v", checkins[0])
	}

	t.Run("second check-in the same day is ignored", func(t *testing.T) {
		again, added := Add(checkins, false, testNow.Add(time.Hour))
		if added {
			t.Error("Add() added = true for a duplicate day")
		}
		if len(again) != 1 {
			t.Fatalf("len = %d, want 1", len(again))
		}
		if !again[0].StuckToRules {
			t.Error("duplicate check-in overwrote the first answer")
		}
	})

	t.Run("repeating the same answer keeps one entry", func(t *testing.T) {
		again, _ := Add(checkins, true, testNow.Add(30*time.Minute))
		if len(again) != 1 {
			t.Errorf("len = %d, want 1", len(again))
		}
	})

	t.Run("next day appends", func(t *testing.T) {
		tomorrow := testNow.Add(24 * time.Hour)
		next, added := Add(checkins, false, tomorrow)
		if !added || len(next) != 2 {
			t.Fatalf("Add() next day = %v, %v", next, added)
		}
		if len(checkins) != 1 {
			t.Error("Add() mutated its input")
		}
	})
}

func TestToday(t *testing.T) {
	yesterday := models.CheckIn{Date: utils.DayKey(testNow.Add(-24 * time.Hour)), StuckToRules: true}
	if got := Today([]models.CheckIn{yesterday}, testNow); got != nil {
		t.Errorf("Today() = %+v, want nil", got)
	}

	today := models.CheckIn{Date: utils.DayKey(testNow), StuckToRules: false}
	got := Today([]models.CheckIn{yesterday, today}, testNow)
	if got == nil || got.Date != today.Date || got.StuckToRules {
		t.Errorf("Today() = %+v, want %+v", got, today)
	}
}
