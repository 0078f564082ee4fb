package stats

import (
	"testing"
	"time"

	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/utils"
)

// 2025-03-12 is a Wednesday
var testNow = time.Date(2025, 3, 12, 15, 0, 0, 0, time.Local)

func daysAgo(n, hour, minute int) time.Time {
	return time.Date(testNow.Year(), testNow.Month(), testNow.Day()-n, hour, minute, 0, 0, time.Local)
}

func session(at time.Time, loc constants.Location) models.LogEntry {
	drags := 3
	return models.LogEntry{
		ID:        at.Format(time.RFC3339Nano) + string(loc),
		Type:      constants.LogTypeVapeSession,
		Timestamp: at,
		Location:  loc,
		DragCount: &drags,
	}
}

func craving(at time.Time) models.LogEntry {
	return models.LogEntry{
		ID:        at.Format(time.RFC3339Nano) + "c",
		Type:      constants.LogTypeCraving,
		Timestamp: at,
		Trigger:   "stress",
		Location:  constants.LocationCoding,
	}
}

func nightWake(at time.Time) models.LogEntry {
	l := session(at, constants.LocationOther)
	l.IsNightWake = true
	return l
}

func TestTodayLogs(t *testing.T) {
	logs := []models.LogEntry{
		craving(daysAgo(1, 23, 58)),
		craving(daysAgo(0, 0, 2)),
		session(daysAgo(0, 14, 0), constants.LocationCoding),
		session(daysAgo(3, 9, 0), constants.LocationBed),
	}

	got := TodayLogs(logs, testNow)
	if len(got) != 2 {
		t.Fatalf("TodayLogs() returned %d entries, want 2", len(got))
	}
	for _, l := range got {
		if utils.DayKey(l.Timestamp) != utils.DayKey(testNow) {
			t.Errorf("TodayLogs() included entry from %s", utils.DayKey(l.Timestamp))
		}
	}

	if got := TodayLogs(nil, testNow); len(got) != 0 {
		t.Errorf("TodayLogs(nil) = %v, want empty", got)
	}
}

func TestCountByType(t *testing.T) {
	logs := []models.LogEntry{
		craving(daysAgo(0, 8, 0)),
		craving(daysAgo(1, 8, 0)),
		session(daysAgo(0, 9, 0), constants.LocationCoding),
	}

	tests := []struct {
		name    string
		logType constants.LogType
		want    int
	}{
		{name: "cravings", logType: constants.LogTypeCraving, want: 2},
		{name: "sessions", logType: constants.LogTypeVapeSession, want: 1},
		{name: "unknown type", logType: "other", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountByType(logs, tt.logType); got != tt.want {
				t.Errorf("CountByType() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("adding an entry changes only its own type", func(t *testing.T) {
		more := append(append([]models.LogEntry{}, logs...), craving(daysAgo(2, 8, 0)))
		if got := CountByType(more, constants.LogTypeCraving); got != 3 {
			t.Errorf("cravings after append = %d, want 3", got)
		}
		if got := CountByType(more, constants.LogTypeVapeSession); got != 1 {
			t.Errorf("sessions after append = %d, want 1", got)
		}
	})
}

func TestNightWakeCount(t *testing.T) {
	flaggedCraving := craving(daysAgo(0, 3, 0))
	flaggedCraving.IsNightWake = true

	logs := []models.LogEntry{
		nightWake(daysAgo(0, 3, 0)),
		nightWake(daysAgo(1, 4, 0)),
		session(daysAgo(0, 12, 0), constants.LocationCoding),
		flaggedCraving,
	}

	if got := NightWakeCount(logs); got != 2 {
		t.Errorf("NightWakeCount() = %d, want 2", got)
	}
	if got := NightWakeCount(nil); got != 0 {
		t.Errorf("NightWakeCount(nil) = %d, want 0", got)
	}
}

func TestBedFreeStreak(t *testing.T) {
	bedCraving := craving(daysAgo(2, 23, 0))
	bedCraving.Location = constants.LocationBed

	tests := []struct {
		name string
		logs []models.LogEntry
		want int
	}{
		{
			name: "empty log",
			logs: nil,
			want: 0,
		},
		{
			name: "bed session yesterday",
			logs: []models.LogEntry{session(daysAgo(1, 23, 0), constants.LocationBed)},
			want: 0,
		},
		{
			name: "bed session three days ago",
			logs: []models.LogEntry{session(daysAgo(3, 23, 0), constants.LocationBed)},
			want: 2,
		},
		{
			name: "last bed session ten days ago",
			logs: []models.LogEntry{
				session(daysAgo(10, 23, 0), constants.LocationBed),
				craving(daysAgo(10, 8, 0)),
			},
			want: 9,
		},
		{
			name: "tracking started ten days ago without bed sessions",
			logs: []models.LogEntry{craving(daysAgo(10, 8, 0))},
			want: 10,
		},
		{
			name: "only today logged",
			logs: []models.LogEntry{session(daysAgo(0, 1, 0), constants.LocationBed)},
			want: 0,
		},
		{
			name: "today's bed session does not break the streak",
			logs: []models.LogEntry{
				craving(daysAgo(4, 8, 0)),
				session(daysAgo(0, 1, 0), constants.LocationBed),
			},
			want: 4,
		},
		{
			name: "bed craving is not a session",
			logs: []models.LogEntry{craving(daysAgo(5, 8, 0)), bedCraving},
			want: 5,
		},
		{
			name: "most recent bed session wins",
			logs: []models.LogEntry{
				session(daysAgo(2, 22, 0), constants.LocationBed),
				craving(daysAgo(20, 8, 0)),
				session(daysAgo(8, 22, 0), constants.LocationBed),
			},
			want: 1,
		},
		{
			name: "insertion order is irrelevant",
			logs: []models.LogEntry{
				session(daysAgo(1, 9, 0), constants.LocationCoding),
				craving(daysAgo(6, 8, 0)),
			},
			want: 6,
		},
		{
			name: "capped at a year",
			logs: []models.LogEntry{craving(daysAgo(400, 8, 0))},
			want: constants.MaxStreakDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BedFreeStreak(tt.logs, testNow); got != tt.want {
				t.Errorf("BedFreeStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeeklyStatsSevenDays(t *testing.T) {
	logs := []models.LogEntry{
		session(daysAgo(0, 9, 0), constants.LocationCoding),
		session(daysAgo(0, 10, 0), constants.LocationCoding),
		craving(daysAgo(0, 11, 0)),
		nightWake(daysAgo(2, 3, 0)),
		craving(daysAgo(6, 11, 0)),
		craving(daysAgo(7, 11, 0)), // outside the window
	}

	n := 7
	days := WeeklyStats(logs, &n, testNow)
	if len(days) != 7 {
		t.Fatalf("WeeklyStats() returned %d buckets, want 7", len(days))
	}

	for i, d := range days {
		want := utils.DayKey(daysAgo(6-i, 12, 0))
		if d.Date != want {
			t.Errorf("bucket %d date = %s, want %s", i, d.Date, want)
		}
	}

	last := days[6]
	if last.Date != utils.DayKey(testNow) {
		t.Errorf("last bucket = %s, want today %s", last.Date, utils.DayKey(testNow))
	}
	if last.Label != "Wed" {
		t.Errorf("last bucket label = %q, want %q", last.Label, "Wed")
	}
	if last.Sessions != 2 || last.Cravings != 1 || last.NightWakes != 0 {
		t.Errorf("today bucket = %+v, want 2 sessions, 1 craving, 0 night wakes", last)
	}
	if days[4].NightWakes != 1 || days[4].Sessions != 1 {
		t.Errorf("two days ago bucket = %+v, want 1 session and 1 night wake", days[4])
	}
	if days[0].Cravings != 1 {
		t.Errorf("first bucket cravings = %d, want 1", days[0].Cravings)
	}
	if days[1].Sessions != 0 || days[1].Cravings != 0 || days[1].NightWakes != 0 {
		t.Errorf("empty day bucket = %+v, want zeros", days[1])
	}
}

func TestWeeklyStatsWindow(t *testing.T) {
	t.Run("nil window spans from the first entry", func(t *testing.T) {
		logs := []models.LogEntry{craving(daysAgo(9, 8, 0)), craving(daysAgo(0, 8, 0))}
		days := WeeklyStats(logs, nil, testNow)
		if len(days) != 10 {
			t.Fatalf("WeeklyStats(nil) returned %d buckets, want 10", len(days))
		}
		if days[0].Date != utils.DayKey(daysAgo(9, 0, 0)) {
			t.Errorf("first bucket = %s, want %s", days[0].Date, utils.DayKey(daysAgo(9, 0, 0)))
		}
		if days[9].Label != "Mar 12" {
			t.Errorf("long window label = %q, want %q", days[9].Label, "Mar 12")
		}
	})

	t.Run("nil window over empty log is just today", func(t *testing.T) {
		days := WeeklyStats(nil, nil, testNow)
		if len(days) != 1 || days[0].Date != utils.DayKey(testNow) {
			t.Errorf("WeeklyStats(nil, nil) = %+v, want a single bucket for today", days)
		}
	})

	t.Run("non-positive window still includes today", func(t *testing.T) {
		zero := 0
		days := WeeklyStats(nil, &zero, testNow)
		if len(days) != 1 {
			t.Errorf("WeeklyStats(0) returned %d buckets, want 1", len(days))
		}
	})

	t.Run("default window", func(t *testing.T) {
		days := DefaultWeeklyStats(nil, testNow)
		if len(days) != constants.DefaultWindowDays {
			t.Errorf("DefaultWeeklyStats() returned %d buckets, want %d", len(days), constants.DefaultWindowDays)
		}
	})
}

func TestWeeklySummary(t *testing.T) {
	logs := []models.LogEntry{
		session(daysAgo(0, 9, 0), constants.LocationCoding),
		session(daysAgo(3, 9, 0), constants.LocationCoding),
		nightWake(daysAgo(5, 3, 0)),
		craving(daysAgo(1, 9, 0)),
		session(daysAgo(8, 9, 0), constants.LocationCoding), // outside the window
	}

	got := WeeklySummary(logs, testNow)
	want := Summary{TotalSessions: 3, TotalCravings: 1, TotalNightWakes: 1, AvgSessionsPerDay: "0.4"}
	if got != want {
		t.Errorf("WeeklySummary() = %+v, want %+v", got, want)
	}

	empty := WeeklySummary(nil, testNow)
	if empty.AvgSessionsPerDay != "0.0" || empty.TotalSessions != 0 {
		t.Errorf("WeeklySummary(nil) = %+v, want zero totals and 0.0", empty)
	}
}

func TestCravingTrend(t *testing.T) {
	logs := []models.LogEntry{
		craving(daysAgo(13, 9, 0)),
		craving(daysAgo(13, 10, 0)),
		craving(daysAgo(0, 9, 0)),
		session(daysAgo(0, 10, 0), constants.LocationCoding),
		craving(daysAgo(14, 9, 0)), // outside the window
	}

	points := CravingTrend(logs, constants.DefaultTrendDays, testNow)
	if len(points) != 14 {
		t.Fatalf("CravingTrend() returned %d points, want 14", len(points))
	}
	if points[0].Count != 2 {
		t.Errorf("first point count = %d, want 2", points[0].Count)
	}
	if points[13].Count != 1 || points[13].Date != utils.DayKey(testNow) {
		t.Errorf("last point = %+v, want today with count 1", points[13])
	}
	for _, p := range points[1:13] {
		if p.Count != 0 {
			t.Errorf("point %s count = %d, want 0", p.Date, p.Count)
		}
	}
}

func TestCheckinStreak(t *testing.T) {
	day := func(n int) string { return utils.DayKey(daysAgo(n, 12, 0)) }

	tests := []struct {
		name     string
		checkins []models.CheckIn
		want     int
	}{
		{
			name:     "empty",
			checkins: nil,
			want:     0,
		},
		{
			name: "today and yesterday positive, then negative",
			checkins: []models.CheckIn{
				{Date: day(0), StuckToRules: true},
				{Date: day(1), StuckToRules: true},
				{Date: day(2), StuckToRules: false},
			},
			want: 2,
		},
		{
			name: "no check-in today yet starts from yesterday",
			checkins: []models.CheckIn{
				{Date: day(1), StuckToRules: true},
				{Date: day(2), StuckToRules: true},
				{Date: day(3), StuckToRules: true},
			},
			want: 3,
		},
		{
			name: "negative today",
			checkins: []models.CheckIn{
				{Date: day(0), StuckToRules: false},
				{Date: day(1), StuckToRules: true},
			},
			want: 0,
		},
		{
			name: "gap stops the streak",
			checkins: []models.CheckIn{
				{Date: day(0), StuckToRules: true},
				{Date: day(2), StuckToRules: true},
			},
			want: 1,
		},
		{
			name: "order does not matter",
			checkins: []models.CheckIn{
				{Date: day(2), StuckToRules: true},
				{Date: day(0), StuckToRules: true},
				{Date: day(1), StuckToRules: true},
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckinStreak(tt.checkins, testNow); got != tt.want {
				t.Errorf("CheckinStreak() = %d, want %d", got, tt.want)
			}
		})
	}

	t.Run("capped at a year", func(t *testing.T) {
		var checkins []models.CheckIn
		for i := 0; i < 400; i++ {
			checkins = append(checkins, models.CheckIn{Date: day(i), StuckToRules: true})
		}
		if got := CheckinStreak(checkins, testNow); got != constants.MaxStreakDays {
			t.Errorf("CheckinStreak() = %d, want %d", got, constants.MaxStreakDays)
		}
	})
}
