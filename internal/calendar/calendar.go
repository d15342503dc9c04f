package calendar

import (
	"fmt"
	"time"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// ParseDayType is the inverse of DayType.String
func ParseDayType(s string) (DayType, error) {
	switch s {
	case "workday":
		return DayTypeWorkday, nil
	case "weekend":
		return DayTypeWeekend, nil
	case "holiday":
		return DayTypeHoliday, nil
	}
	return 0, fmt.Errorf("unknown day type %q", s)
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date          time.Time
	Type          DayType
	IsBusinessDay bool
	Note          string // holiday name, empty otherwise
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year     int
	Month    time.Month
	WorkDays int
	Weekends int
	Holidays int
	Days     []DayInfo
}

// Holiday is a named public holiday
type Holiday struct {
	Date time.Time
	Name string
}

// Calendar interface for checking business days
type Calendar interface {
	// IsBusinessDay checks if the given date is a business day
	IsBusinessDay(date time.Time) (bool, error)

	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date time.Time) (*DayInfo, error)

	// GetMonthInfo returns calendar info for the entire month
	GetMonthInfo(year int, month time.Month) (*MonthInfo, error)

	// Window returns the range of dates the calendar can answer for
	Window() Window
}

// Window is an inclusive range of calendar dates
type Window struct {
	From time.Time
	To   time.Time
}

// DefaultWindow is the validity range of the built-in business day table
var DefaultWindow = Window{
	From: time.Date(2016, time.December, 29, 0, 0, 0, 0, time.UTC),
	To:   time.Date(2021, time.January, 3, 0, 0, 0, 0, time.UTC),
}

// Contains reports whether the calendar date of t lies inside the window
func (w Window) Contains(t time.Time) bool {
	d := dateFromTime(t)
	return d.inRange(dateFromTime(w.From), dateFromTime(w.To))
}

// Days returns the number of dates covered by the window
func (w Window) Days() int {
	from := dateFromTime(w.From).toTime()
	to := dateFromTime(w.To).toTime()
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s]", w.From.Format("2006-01-02"), w.To.Format("2006-01-02"))
}

// OutOfRangeError is returned for dates the calendar has no data for
type OutOfRangeError struct {
	Date   time.Time
	Window Window
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("date %s is outside the calendar window %s",
		e.Date.Format("2006-01-02"), e.Window)
}
