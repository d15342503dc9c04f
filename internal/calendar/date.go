package calendar

import "time"

// date is a comparable map key for a calendar day.
// Only the wall-clock fields of the source time.Time are kept.
type date struct {
	year  int
	month time.Month
	day   int
}

func dateFromTime(t time.Time) date {
	y, m, d := t.Date()
	return date{year: y, month: m, day: d}
}

func (d date) toTime() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d date) addDays(n int) date {
	return dateFromTime(d.toTime().AddDate(0, 0, n))
}

func (d date) before(other date) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

func (d date) inRange(from, to date) bool {
	return !d.before(from) && !to.before(d)
}

func (d date) String() string {
	return d.toTime().Format("2006-01-02")
}
