package calendar

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// holidayRule yields the date of a public holiday in a given year
type holidayRule struct {
	name string
	date func(year int) date
}

func fixed(month time.Month, day int) func(int) date {
	return func(year int) date {
		return date{year: year, month: month, day: day}
	}
}

func easterOffset(days int) func(int) date {
	return func(year int) date {
		return dateFromTime(EasterSunday(year)).addDays(days)
	}
}

// frenchHolidays is the national rule set (Pentecost Monday is not observed)
var frenchHolidays = []holidayRule{
	{"New Years Day", fixed(time.January, 1)},
	{"Easter Monday", easterOffset(1)},
	{"Labour Day", fixed(time.May, 1)},
	{"Victory in Europe Day", fixed(time.May, 8)},
	{"Ascension Day", easterOffset(39)},
	{"Bastille Day", fixed(time.July, 14)},
	{"Assumption of Mary to Heaven", fixed(time.August, 15)},
	{"All Saints Day", fixed(time.November, 1)},
	{"Armistice Day", fixed(time.November, 11)},
	{"Christmas Day", fixed(time.December, 25)},
}

// FrenchCalendar implements Calendar with a business day table computed
// from the French holiday rules. The table is built once by
// NewFrenchCalendar and never mutated, so it is safe for concurrent use.
type FrenchCalendar struct {
	window Window
	days   map[date]DayInfo
	logger *zap.Logger
}

// NewFrenchCalendar precomputes every day inside window
func NewFrenchCalendar(window Window, logger *zap.Logger) (*FrenchCalendar, error) {
	if window.Days() == 0 {
		return nil, fmt.Errorf("empty calendar window %s", window)
	}

	fc := &FrenchCalendar{
		window: Window{
			From: dateFromTime(window.From).toTime(),
			To:   dateFromTime(window.To).toTime(),
		},
		days:   make(map[date]DayInfo, window.Days()),
		logger: logger,
	}

	from := dateFromTime(window.From)
	to := dateFromTime(window.To)

	named := make(map[date]string)
	for year := from.year; year <= to.year; year++ {
		for _, rule := range frenchHolidays {
			named[rule.date(year)] = rule.name
		}
	}

	businessDays := 0
	for d := from; !to.before(d); d = d.addDays(1) {
		t := d.toTime()
		info := DayInfo{Date: t}

		if name, ok := named[d]; ok {
			info.Type = DayTypeHoliday
			info.Note = name
		} else if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
			info.Type = DayTypeWeekend
		} else {
			info.Type = DayTypeWorkday
			info.IsBusinessDay = true
			businessDays++
		}

		fc.days[d] = info
	}

	logger.Debug("French business day table built",
		zap.Stringer("window", fc.window),
		zap.Int("days", len(fc.days)),
		zap.Int("business_days", businessDays))

	return fc, nil
}

// Window returns the validity range of the table
func (fc *FrenchCalendar) Window() Window {
	return fc.window
}

// IsBusinessDay checks if the given date is a business day
func (fc *FrenchCalendar) IsBusinessDay(t time.Time) (bool, error) {
	info, err := fc.GetDayInfo(t)
	if err != nil {
		return false, err
	}
	return info.IsBusinessDay, nil
}

// GetDayInfo returns detailed info for a specific day
func (fc *FrenchCalendar) GetDayInfo(t time.Time) (*DayInfo, error) {
	info, ok := fc.days[dateFromTime(t)]
	if !ok {
		return nil, &OutOfRangeError{Date: t, Window: fc.window}
	}
	return &info, nil
}

// GetMonthInfo returns calendar info for the entire month.
// Every day of the month must lie inside the window.
func (fc *FrenchCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	for _, bound := range []time.Time{first, last} {
		if !fc.window.Contains(bound) {
			return nil, &OutOfRangeError{Date: bound, Window: fc.window}
		}
	}

	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, last.Day()),
	}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		info := fc.days[dateFromTime(day)]
		switch info.Type {
		case DayTypeWorkday:
			monthInfo.WorkDays++
		case DayTypeWeekend:
			monthInfo.Weekends++
		case DayTypeHoliday:
			monthInfo.Holidays++
		}
		monthInfo.Days = append(monthInfo.Days, info)
	}

	return monthInfo, nil
}

// Holidays returns the named holidays of year that fall inside the window,
// sorted by date. Holidays falling on a weekend are included.
func (fc *FrenchCalendar) Holidays(year int) ([]Holiday, error) {
	if year < fc.window.From.Year() || year > fc.window.To.Year() {
		return nil, &OutOfRangeError{Date: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), Window: fc.window}
	}

	all := HolidaysInYear(year)
	result := make([]Holiday, 0, len(all))
	for _, h := range all {
		if fc.window.Contains(h.Date) {
			result = append(result, h)
		}
	}
	return result, nil
}

// HolidaysInYear applies the rule set to any year, independent of a window
func HolidaysInYear(year int) []Holiday {
	result := make([]Holiday, 0, len(frenchHolidays))
	for _, rule := range frenchHolidays {
		result = append(result, Holiday{Date: rule.date(year).toTime(), Name: rule.name})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}
