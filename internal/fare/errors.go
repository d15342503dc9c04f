package fare

import (
	"fmt"
	"time"
)

// InvalidRangeError is returned when a mission ends before it starts
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("end date %s happened before start date %s",
		e.End.Format("2006-01-02 15:04:05"), e.Start.Format("2006-01-02 15:04:05"))
}

// UnsupportedSpanError is returned for missions covering more than two calendar dates
type UnsupportedSpanError struct {
	Start time.Time
	End   time.Time
	Days  int // calendar dates touched by the mission
}

func (e *UnsupportedSpanError) Error() string {
	return fmt.Sprintf("mission from %s to %s spans %d calendar days, at most 2 are supported",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"), e.Days)
}

// InvalidInstantError is returned for boundaries that are not on a whole hour
type InvalidInstantError struct {
	Instant time.Time
}

func (e *InvalidInstantError) Error() string {
	return fmt.Sprintf("instant %s is not on a whole hour", e.Instant.Format("2006-01-02 15:04:05"))
}
