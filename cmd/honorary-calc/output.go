package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/username/honorary-calc/internal/calendar"
	"github.com/username/honorary-calc/internal/fare"
	"github.com/username/honorary-calc/pkg/dateutil"
)

var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	totalColor = color.New(color.FgGreen, color.Bold)
)

func printResult(w io.Writer, r *fare.Result) {
	fmt.Fprintf(w, "Start date: %s\n", r.Start.Format(dateutil.InstantLayout))
	fmt.Fprintf(w, "End date: %s\n", r.End.Format(dateutil.InstantLayout))
	statusColor(r.StartBusinessDay).Fprintln(w, r.StartStatus)
	statusColor(r.EndBusinessDay).Fprintln(w, r.EndStatus)
	fmt.Fprintf(w, "You have worked %d hours.\n", r.HoursWorked)
	totalColor.Fprintf(w, "You are owed %d euros.\n", r.Total)
}

func printBuckets(w io.Writer, r *fare.Result, rule fare.ShiftRule) {
	if len(r.Buckets) == 0 {
		return
	}

	fmt.Fprintf(w, "\nDay shift %02d:00-%02d:00, night shift otherwise\n", rule.DayStart, rule.NightStart)
	fmt.Fprintln(w, "  Date       | Type     | Hours | Day | Night | Fee")
	fmt.Fprintln(w, "-------------+----------+-------+-----+-------+---------")
	for _, b := range r.Buckets {
		kind := "business"
		if !b.BusinessDay {
			kind = "holiday"
		}
		fmt.Fprintf(w, "  %s | %-8s | %5d | %3d | %5d | %7.2f\n",
			b.Date.Format(dateutil.DateLayout), kind, b.Hours(), b.DayHours, b.NightHours, b.Fee)
	}
	if r.FirstShift != 0 {
		fmt.Fprintf(w, "\nFirst hour: %s shift, premium %s\n", r.FirstShift, onOff(r.Buckets[0].FirstHourBonus))
	}
}

func printDay(w io.Writer, info *calendar.DayInfo) {
	date := info.Date.Format(dateutil.DateLayout)
	switch {
	case info.IsBusinessDay:
		okColor.Fprintf(w, "%s (%s) is a business day.\n", date, info.Date.Weekday())
	case info.Note != "":
		warnColor.Fprintf(w, "%s (%s) is a holiday: %s.\n", date, info.Date.Weekday(), info.Note)
	default:
		warnColor.Fprintf(w, "%s (%s) is a weekend day.\n", date, info.Date.Weekday())
	}
}

func printHolidays(w io.Writer, year int, holidays []calendar.Holiday) {
	fmt.Fprintf(w, "Public holidays %d\n", year)
	for _, h := range holidays {
		line := fmt.Sprintf("  %s  %-9s  %s\n", h.Date.Format(dateutil.DateLayout), h.Date.Weekday(), h.Name)
		if dateutil.IsWeekend(h.Date) {
			warnColor.Fprint(w, line)
		} else {
			fmt.Fprint(w, line)
		}
	}
}

// describeError adds the supported range to out-of-window errors
func describeError(err error) error {
	var outRangeErr *calendar.OutOfRangeError
	if errors.As(err, &outRangeErr) {
		return fmt.Errorf("no business day data for %s, supported dates are %s",
			outRangeErr.Date.Format(dateutil.DateLayout), outRangeErr.Window)
	}
	return err
}

func statusColor(businessDay bool) *color.Color {
	if businessDay {
		return okColor
	}
	return warnColor
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
