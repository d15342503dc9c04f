// Package fare computes the honorarium owed for an on-call mission.
//
// A mission is billed per calendar date. Each elapsed hour belongs to the
// date it starts on and to the Day or Night shift given by a ShiftRule.
// The start date is billed with a first-hour premium for the shift of the
// very first hour; the end date of a two-day mission is a continuation and
// only earns subsequent-hour rates. Business days use the normal table,
// weekends and holidays the holiday table, chosen per date.
package fare

import (
	"fmt"
	"math"
	"time"

	"github.com/username/honorary-calc/internal/calendar"
	"github.com/username/honorary-calc/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	startBusinessDayStatus = "Start date is business day."
	startHolidayStatus     = "Start date is weekend or holiday."
	endBusinessDayStatus   = "End date is business day."
	endHolidayStatus       = "End date is weekend or holiday."
)

// DayBucket is the billing of the hours worked on one calendar date
type DayBucket struct {
	Date           time.Time `json:"date"`
	BusinessDay    bool      `json:"business_day"`
	DayHours       int       `json:"day_hours"`
	NightHours     int       `json:"night_hours"`
	FirstHourShift Shift     `json:"first_hour_shift,omitempty"`
	FirstHourBonus bool      `json:"first_hour_bonus"`
	Fee            float64   `json:"fee"`
}

// Hours returns the number of hours billed in the bucket
func (b DayBucket) Hours() int {
	return b.DayHours + b.NightHours
}

func (b DayBucket) count(s Shift) int {
	if s == ShiftDay {
		return b.DayHours
	}
	return b.NightHours
}

// Result is the outcome of a fee calculation
type Result struct {
	Start            time.Time   `json:"start"`
	End              time.Time   `json:"end"`
	HoursWorked      int         `json:"hours_worked"`
	Total            int64       `json:"total"`
	Amount           float64     `json:"amount"`
	SingleDay        bool        `json:"single_day"`
	FirstShift       Shift       `json:"first_shift,omitempty"`
	StartBusinessDay bool        `json:"start_business_day"`
	EndBusinessDay   bool        `json:"end_business_day"`
	StartStatus      string      `json:"start_status"`
	EndStatus        string      `json:"end_status"`
	Buckets          []DayBucket `json:"buckets"`
}

// Engine computes honoraria against a holiday calendar.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	calendar calendar.Calendar
	rule     ShiftRule
	logger   *zap.Logger
}

// NewEngine creates a new fare engine
func NewEngine(cal calendar.Calendar, rule ShiftRule, logger *zap.Logger) (*Engine, error) {
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shift rule: %w", err)
	}

	return &Engine{
		calendar: cal,
		rule:     rule,
		logger:   logger,
	}, nil
}

// ShiftRule returns the rule used to split hours into shifts
func (e *Engine) ShiftRule() ShiftRule {
	return e.rule
}

// Compute calculates the fee for a mission from start to end.
// When firstHourBonus is false the first hour is billed at the subsequent-hour rate.
func (e *Engine) Compute(start, end time.Time, fares Fares, firstHourBonus bool) (*Result, error) {
	for _, instant := range []time.Time{start, end} {
		if !dateutil.IsWholeHour(instant) {
			return nil, &InvalidInstantError{Instant: instant}
		}
	}

	start, end = dateutil.Civil(start), dateutil.Civil(end)
	if end.Before(start) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}

	span := dateutil.DaysBetween(start, end)
	if span > 1 {
		return nil, &UnsupportedSpanError{Start: start, End: end, Days: span + 1}
	}

	startBusinessDay, err := e.calendar.IsBusinessDay(start)
	if err != nil {
		return nil, fmt.Errorf("failed to check start date: %w", err)
	}
	endBusinessDay, err := e.calendar.IsBusinessDay(end)
	if err != nil {
		return nil, fmt.Errorf("failed to check end date: %w", err)
	}

	result := &Result{
		Start:            start,
		End:              end,
		HoursWorked:      int(end.Sub(start) / time.Hour),
		SingleDay:        span == 0,
		StartBusinessDay: startBusinessDay,
		EndBusinessDay:   endBusinessDay,
		StartStatus:      status(startBusinessDay, startBusinessDayStatus, startHolidayStatus),
		EndStatus:        status(endBusinessDay, endBusinessDayStatus, endHolidayStatus),
		Buckets:          []DayBucket{},
	}

	if result.HoursWorked == 0 {
		e.logger.Debug("Empty mission", zap.Time("start", start))
		return result, nil
	}

	startBucket := DayBucket{
		Date:           dateutil.CivilDate(start),
		BusinessDay:    startBusinessDay,
		FirstHourShift: e.rule.Classify(start.Hour()),
		FirstHourBonus: firstHourBonus,
	}
	endBucket := DayBucket{
		Date:        dateutil.CivilDate(end),
		BusinessDay: endBusinessDay,
	}

	for i := 0; i < result.HoursWorked; i++ {
		hour := start.Add(time.Duration(i) * time.Hour)
		bucket := &startBucket
		if !dateutil.IsSameDay(hour, start) {
			bucket = &endBucket
		}

		if e.rule.Classify(hour.Hour()) == ShiftDay {
			bucket.DayHours++
		} else {
			bucket.NightHours++
		}
	}

	startBucket.Fee = startFee(startBucket, fares.ForDay(startBusinessDay))
	result.FirstShift = startBucket.FirstHourShift
	result.Buckets = append(result.Buckets, startBucket)
	result.Amount = startBucket.Fee

	if !result.SingleDay {
		endBucket.Fee = continuationFee(endBucket, fares.ForDay(endBusinessDay))
		result.Buckets = append(result.Buckets, endBucket)
		result.Amount += endBucket.Fee
	}

	result.Total = int64(math.Trunc(result.Amount))

	e.logger.Debug("Honorary computed",
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("hours_worked", result.HoursWorked),
		zap.Stringer("first_shift", result.FirstShift),
		zap.Bool("first_hour_bonus", firstHourBonus),
		zap.Float64("amount", result.Amount),
		zap.Int64("total", result.Total))

	return result, nil
}

// startFee bills the first hour at the premium rate of its shift
func startFee(b DayBucket, table Table) float64 {
	if !b.FirstHourBonus {
		table = table.Flat()
	}

	first := b.FirstHourShift
	other := ShiftNight
	if first == ShiftNight {
		other = ShiftDay
	}

	return table.FirstHour(first) +
		float64(b.count(first)-1)*table.Subsequent(first) +
		float64(b.count(other))*table.Subsequent(other)
}

func continuationFee(b DayBucket, table Table) float64 {
	return float64(b.DayHours)*table.Subsequent(ShiftDay) +
		float64(b.NightHours)*table.Subsequent(ShiftNight)
}

func status(businessDay bool, yes, no string) string {
	if businessDay {
		return yes
	}
	return no
}
