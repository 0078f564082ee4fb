package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/cloudcontrol/internal/constants"
)

// DayKey returns the local calendar day of t as YYYY-MM-DD.
// Day boundaries are always those of the local timezone, never UTC.
func DayKey(t time.Time) string {
	return DayKeyIn(t, time.Local)
}

// DayKeyIn returns the calendar day of t in loc as YYYY-MM-DD.
func DayKeyIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// StartOfDay returns midnight (00:00:00.000) of t's local calendar day.
func StartOfDay(t time.Time) time.Time {
	return StartOfDayIn(t, time.Local)
}

// StartOfDayIn returns midnight of t's calendar day in loc.
func StartOfDayIn(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// AddDays moves day by n calendar days and returns midnight of the resulting day.
// Calendar arithmetic keeps the result on midnight across DST transitions.
func AddDays(day time.Time, n int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+n, 0, 0, 0, 0, day.Location())
}

// DaysBetween returns the number of calendar days from a's local day to b's local day.
// The result is negative when b falls on an earlier day than a.
func DaysBetween(a, b time.Time) int {
	a, b = a.In(time.Local), b.In(time.Local)
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// ParseDayKey parses a date string (YYYY-MM-DD) as midnight in loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// NextOccurrence returns the next instant at or after now whose local wall clock
// reads timeStr (HH:MM).
func NextOccurrence(timeStr string, now time.Time) (time.Time, error) {
	tod, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}
	day := StartOfDay(now)
	next := time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, day.Location())
	if next.Before(now) {
		next = time.Date(day.Year(), day.Month(), day.Day()+1, tod.Hour(), tod.Minute(), 0, 0, day.Location())
	}
	return next, nil
}
