package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InstantLayout is the "YYYY-MM-DD HH:MM:SS" form used for mission boundaries
const InstantLayout = "2006-01-02 15:04:05"

// DateLayout is the calendar date form
const DateLayout = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Civil returns the wall-clock fields of t re-anchored in UTC.
// Calendar arithmetic on the result is not affected by DST transitions.
func Civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// CivilDate returns the calendar date of t as midnight UTC
func CivilDate(t time.Time) time.Time {
	return StartOfDay(Civil(t))
}

// DaysBetween returns the number of calendar days from a to b.
// Time of day is ignored, so 23:00 → 01:00 the next day is 1.
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)).Hours() / 24)
}

// IsWholeHour reports whether t has no minutes, seconds or nanoseconds
func IsWholeHour(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		DateLayout,
		"02.01.2006",
		"2006/01/02",
	}

	dateStr = strings.TrimSpace(dateStr)
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", dateStr)
}

// ParseInstant parses a mission boundary.
// Accepts "YYYY-MM-DD HH:MM:SS", the same with a T separator, or "YYYY-MM-DD HH:MM".
func ParseInstant(s string) (time.Time, error) {
	formats := []string{
		InstantLayout,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04",
	}

	s = strings.TrimSpace(s)
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized instant %q, expected YYYY-MM-DD HH:MM:SS", s)
}

// InstantFromDateHour combines a calendar date and an hour entry.
// The hour may be written "15", "15:00" or "15:00:00"; 24 means midnight of the following day.
func InstantFromDateHour(dateStr, hourStr string) (time.Time, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}

	hourStr = strings.TrimSpace(hourStr)
	if head, rest, found := strings.Cut(hourStr, ":"); found {
		if strings.Trim(rest, "0:") != "" {
			return time.Time{}, fmt.Errorf("hour %q must be a whole hour", hourStr)
		}
		hourStr = head
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour %q: %w", hourStr, err)
	}
	if hour < 0 || hour > 24 {
		return time.Time{}, fmt.Errorf("hour %d out of range 0-24", hour)
	}

	return date.Add(time.Duration(hour) * time.Hour), nil
}
