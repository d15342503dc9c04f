package fare

import "fmt"

// Shift classifies a worked hour for billing
type Shift int

const (
	ShiftDay Shift = iota + 1
	ShiftNight
)

func (s Shift) String() string {
	switch s {
	case ShiftDay:
		return "Day"
	case ShiftNight:
		return "Night"
	default:
		return "Unknown"
	}
}

// MarshalText renders the shift as "Day" or "Night" in JSON output
func (s Shift) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ShiftRule splits the 24 hours of a day into Day and Night.
// An hour-interval [h, h+1) is Day when DayStart <= h < NightStart.
type ShiftRule struct {
	DayStart   int
	NightStart int
}

// DefaultShiftRule is day between 0700 and 2200, night between 2200 and 0700
var DefaultShiftRule = ShiftRule{DayStart: 7, NightStart: 22}

// Validate validates the shift rule
func (r ShiftRule) Validate() error {
	if r.DayStart < 0 || r.DayStart > 23 {
		return fmt.Errorf("day start hour %d out of range 0-23", r.DayStart)
	}
	if r.NightStart < 1 || r.NightStart > 24 {
		return fmt.Errorf("night start hour %d out of range 1-24", r.NightStart)
	}
	if r.DayStart >= r.NightStart {
		return fmt.Errorf("day start hour %d must be before night start hour %d", r.DayStart, r.NightStart)
	}
	return nil
}

// Classify returns the shift of the hour-interval starting at hour
func (r ShiftRule) Classify(hour int) Shift {
	if hour >= r.DayStart && hour < r.NightStart {
		return ShiftDay
	}
	return ShiftNight
}
