package calendar

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar implements Calendar with fallback strategy
// Primary: FileCalendar (exported table, possibly hand-edited)
// Fallback: FrenchCalendar (computed rules)
type CompositeCalendar struct {
	primary  Calendar
	fallback Calendar
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback Calendar, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Window returns the union of both windows when they overlap or touch,
// otherwise the primary window. The fallback only answers inside Window.
func (cc *CompositeCalendar) Window() Window {
	p, f := cc.primary.Window(), cc.fallback.Window()
	if p.To.AddDate(0, 0, 1).Before(f.From) || f.To.AddDate(0, 0, 1).Before(p.From) {
		return p
	}

	w := p
	if f.From.Before(w.From) {
		w.From = f.From
	}
	if f.To.After(w.To) {
		w.To = f.To
	}
	return w
}

// IsBusinessDay checks if the given date is a business day
func (cc *CompositeCalendar) IsBusinessDay(date time.Time) (bool, error) {
	// Try primary first
	isBusinessDay, err := cc.primary.IsBusinessDay(date)
	if err == nil {
		return isBusinessDay, nil
	}

	if err := cc.checkWindow(date); err != nil {
		return false, err
	}

	cc.logger.Warn("Primary calendar failed, falling back",
		zap.Time("date", date),
		zap.Error(err))

	return cc.fallback.IsBusinessDay(date)
}

// GetMonthInfo returns calendar info for the entire month
func (cc *CompositeCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	// Try primary first
	monthInfo, err := cc.primary.GetMonthInfo(year, month)
	if err == nil {
		return monthInfo, nil
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for _, bound := range []time.Time{first, first.AddDate(0, 1, -1)} {
		if err := cc.checkWindow(bound); err != nil {
			return nil, err
		}
	}

	cc.logger.Warn("Primary calendar failed, falling back",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Error(err))

	return cc.fallback.GetMonthInfo(year, month)
}

// GetDayInfo returns detailed info for a specific day
func (cc *CompositeCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	// Try primary first
	dayInfo, err := cc.primary.GetDayInfo(date)
	if err == nil {
		return dayInfo, nil
	}

	if err := cc.checkWindow(date); err != nil {
		return nil, err
	}

	cc.logger.Warn("Primary calendar failed, falling back",
		zap.Time("date", date),
		zap.Error(err))

	return cc.fallback.GetDayInfo(date)
}

func (cc *CompositeCalendar) checkWindow(date time.Time) error {
	if w := cc.Window(); !w.Contains(date) {
		return &OutOfRangeError{Date: date, Window: w}
	}
	return nil
}

// LoadPrimary loads the primary calendar (if FileCalendar)
func (cc *CompositeCalendar) LoadPrimary() error {
	if fc, ok := cc.primary.(*FileCalendar); ok {
		if err := fc.Load(); err != nil {
			return fmt.Errorf("failed to load primary calendar: %w", err)
		}
		cc.logger.Info("Primary calendar loaded successfully")
	}
	return nil
}
