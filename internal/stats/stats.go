// Package stats derives streaks, day buckets and summaries from the raw event log.
//
// Every function is pure: the log is never modified, "now" is always passed in,
// and an empty log yields zero values rather than errors.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/cloudcontrol/internal/constants"
	"github.com/julianstephens/cloudcontrol/internal/models"
	"github.com/julianstephens/cloudcontrol/internal/utils"
)

// DayStats is one day bucket of the weekly chart
type DayStats struct {
	Date       string `json:"date"`
	Label      string `json:"label"`
	Sessions   int    `json:"sessions"`
	Cravings   int    `json:"cravings"`
	NightWakes int    `json:"nightWakes"`
}

// Summary totals the trailing seven days
type Summary struct {
	TotalSessions     int    `json:"totalSessions"`
	TotalCravings     int    `json:"totalCravings"`
	TotalNightWakes   int    `json:"totalNightWakes"`
	AvgSessionsPerDay string `json:"avgSessionsPerDay"`
}

// TrendPoint is the craving count for a single day
type TrendPoint struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TodayLogs returns the entries that fall on now's local calendar day.
func TodayLogs(logs []models.LogEntry, now time.Time) []models.LogEntry {
	today := utils.DayKey(now)
	out := []models.LogEntry{}
	for _, l := range logs {
		if utils.DayKey(l.Timestamp) == today {
			out = append(out, l)
		}
	}
	return out
}

// CountByType counts the entries of the given type.
func CountByType(logs []models.LogEntry, logType constants.LogType) int {
	count := 0
	for _, l := range logs {
		if l.Type == logType {
			count++
		}
	}
	return count
}

// NightWakeCount counts vape sessions flagged as night wakes.
func NightWakeCount(logs []models.LogEntry) int {
	count := 0
	for _, l := range logs {
		if l.IsSession() && l.IsNightWake {
			count++
		}
	}
	return count
}

// BedFreeStreak counts consecutive completed days without a vape session in bed.
//
// Today never counts because it is not over yet; the walk starts at yesterday and
// stops at the first day with a bed session, at the day before tracking started
// (the earliest entry's day), or after MaxStreakDays days.
func BedFreeStreak(logs []models.LogEntry, now time.Time) int {
	if len(logs) == 0 {
		return 0
	}

	sorted := sortByTimestamp(logs)
	trackingStart := utils.StartOfDay(sorted[0].Timestamp)

	bedDays := make(map[string]bool)
	for _, l := range logs {
		if l.IsSession() && l.Location == constants.LocationBed {
			bedDays[utils.DayKey(l.Timestamp)] = true
		}
	}

	today := utils.StartOfDay(now)
	streak := 0
	for i := 1; i <= constants.MaxStreakDays; i++ {
		day := utils.AddDays(today, -i)
		if day.Before(trackingStart) {
			break
		}
		if bedDays[utils.DayKey(day)] {
			break
		}
		streak++
	}

	return streak
}

// WeeklyStats buckets the log per day over a trailing window that ends today.
//
// A nil numDays spans from the earliest entry's day through today. Windows of up
// to seven days are labelled by weekday ("Mon"), longer ones by date ("Jan 2").
func WeeklyStats(logs []models.LogEntry, numDays *int, now time.Time) []DayStats {
	today := utils.StartOfDay(now)

	span := 1
	switch {
	case numDays != nil:
		span = *numDays
	case len(logs) > 0:
		earliest := sortByTimestamp(logs)[0].Timestamp
		span = utils.DaysBetween(earliest, today) + 1
	}
	if span < 1 {
		span = 1
	}

	byDay := bucketByDay(logs)
	days := make([]DayStats, 0, span)
	for i := span - 1; i >= 0; i-- {
		day := utils.AddDays(today, -i)
		key := utils.DayKey(day)
		dayLogs := byDay[key]
		days = append(days, DayStats{
			Date:       key,
			Label:      dayLabel(day, span),
			Sessions:   CountByType(dayLogs, constants.LogTypeVapeSession),
			Cravings:   CountByType(dayLogs, constants.LogTypeCraving),
			NightWakes: NightWakeCount(dayLogs),
		})
	}

	return days
}

// DefaultWeeklyStats is WeeklyStats over the last seven days.
func DefaultWeeklyStats(logs []models.LogEntry, now time.Time) []DayStats {
	n := constants.DefaultWindowDays
	return WeeklyStats(logs, &n, now)
}

// WeeklySummary totals the trailing seven days. The average is always taken over
// seven days so it reads as a weekly rate.
func WeeklySummary(logs []models.LogEntry, now time.Time) Summary {
	n := constants.SummaryDays
	var s Summary
	for _, d := range WeeklyStats(logs, &n, now) {
		s.TotalSessions += d.Sessions
		s.TotalCravings += d.Cravings
		s.TotalNightWakes += d.NightWakes
	}
	s.AvgSessionsPerDay = fmt.Sprintf("%.1f", float64(s.TotalSessions)/float64(constants.SummaryDays))
	return s
}

// CravingTrend returns per-day craving counts for the trailing days, today included.
func CravingTrend(logs []models.LogEntry, days int, now time.Time) []TrendPoint {
	buckets := WeeklyStats(logs, &days, now)
	points := make([]TrendPoint, len(buckets))
	for i, b := range buckets {
		points[i] = TrendPoint{Date: b.Date, Label: b.Label, Count: b.Cravings}
	}
	return points
}

// CheckinStreak counts consecutive days with a positive check-in. The walk starts
// today when today already has a check-in, otherwise yesterday, and stops at the
// first missing or negative day.
func CheckinStreak(checkins []models.CheckIn, now time.Time) int {
	byDate := make(map[string]bool, len(checkins))
	for _, c := range checkins {
		if _, seen := byDate[c.Date]; !seen {
			byDate[c.Date] = c.StuckToRules
		}
	}

	day := utils.StartOfDay(now)
	if _, ok := byDate[utils.DayKey(day)]; !ok {
		day = utils.AddDays(day, -1)
	}

	streak := 0
	for i := 0; i < constants.MaxStreakDays; i++ {
		stuck, ok := byDate[utils.DayKey(utils.AddDays(day, -i))]
		if !ok || !stuck {
			break
		}
		streak++
	}
	return streak
}

func bucketByDay(logs []models.LogEntry) map[string][]models.LogEntry {
	out := make(map[string][]models.LogEntry)
	for _, l := range logs {
		key := utils.DayKey(l.Timestamp)
		out[key] = append(out[key], l)
	}
	return out
}

func sortByTimestamp(logs []models.LogEntry) []models.LogEntry {
	sorted := make([]models.LogEntry, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

func dayLabel(day time.Time, span int) string {
	if span <= constants.DefaultWindowDays {
		return day.Format("Mon")
	}
	return day.Format("Jan 2")
}
