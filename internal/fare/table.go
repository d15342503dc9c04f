package fare

import "fmt"

// Table holds the hourly rates of one fare schedule
type Table struct {
	DayFirstHour        float64 `json:"day_first_hour"`
	DaySubsequentHour   float64 `json:"day_subsequent_hour"`
	NightFirstHour      float64 `json:"night_first_hour"`
	NightSubsequentHour float64 `json:"night_subsequent_hour"`
}

// Fares pairs the business day and holiday tables
type Fares struct {
	Normal  Table `json:"normal"`
	Holiday Table `json:"holiday"`
}

// DefaultFares are the rates in euros used when no configuration overrides them
var DefaultFares = Fares{
	Normal: Table{
		DayFirstHour:        42,
		DaySubsequentHour:   30,
		NightFirstHour:      49.50,
		NightSubsequentHour: 37.50,
	},
	Holiday: Table{
		DayFirstHour:        49.50,
		DaySubsequentHour:   37.50,
		NightFirstHour:      57,
		NightSubsequentHour: 45,
	},
}

// FirstHour returns the premium rate for the first hour of shift
func (t Table) FirstHour(s Shift) float64 {
	if s == ShiftDay {
		return t.DayFirstHour
	}
	return t.NightFirstHour
}

// Subsequent returns the rate for every other hour of shift
func (t Table) Subsequent(s Shift) float64 {
	if s == ShiftDay {
		return t.DaySubsequentHour
	}
	return t.NightSubsequentHour
}

// Flat returns a copy of t without first-hour premium
func (t Table) Flat() Table {
	t.DayFirstHour = t.DaySubsequentHour
	t.NightFirstHour = t.NightSubsequentHour
	return t
}

// Validate validates the table
func (t Table) Validate() error {
	rates := []struct {
		name string
		rate float64
	}{
		{"day_first_hour", t.DayFirstHour},
		{"day_subsequent_hour", t.DaySubsequentHour},
		{"night_first_hour", t.NightFirstHour},
		{"night_subsequent_hour", t.NightSubsequentHour},
	}
	for _, r := range rates {
		if r.rate < 0 {
			return fmt.Errorf("%s must not be negative, got %v", r.name, r.rate)
		}
	}
	return nil
}

// Validate validates both tables
func (f Fares) Validate() error {
	if err := f.Normal.Validate(); err != nil {
		return fmt.Errorf("normal: %w", err)
	}
	if err := f.Holiday.Validate(); err != nil {
		return fmt.Errorf("holiday: %w", err)
	}
	return nil
}

// ForDay selects the table for a business day or a weekend/holiday
func (f Fares) ForDay(businessDay bool) Table {
	if businessDay {
		return f.Normal
	}
	return f.Holiday
}
