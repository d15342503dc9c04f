package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileCalendar implements Calendar interface using a local text file.
// The window is the contiguous range of dates found in the file.
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	window   Window
	data     map[string]*MonthInfo // key: "YYYY-MM"
	days     map[date]DayInfo
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string]*MonthInfo),
		days:     make(map[date]DayInfo),
	}
}

// Load loads calendar data from file
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	if err := fc.read(file); err != nil {
		return err
	}

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("months", len(fc.data)),
		zap.Stringer("window", fc.window))

	return nil
}

func (fc *FileCalendar) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var first, last date
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD type [note], fields separated by any whitespace
		// Example: 2019-05-01 holiday Labour Day
		parts := strings.Fields(line)
		if len(parts) < 2 {
			return fmt.Errorf("calendar file line %d: expected \"YYYY-MM-DD type [note]\", got %q", lineNo, line)
		}

		day, err := time.Parse("2006-01-02", parts[0])
		if err != nil {
			return fmt.Errorf("calendar file line %d: invalid date %q: %w", lineNo, parts[0], err)
		}

		dayType, err := ParseDayType(parts[1])
		if err != nil {
			return fmt.Errorf("calendar file line %d: %w", lineNo, err)
		}

		note := strings.Join(parts[2:], " ")

		d := dateFromTime(day)
		if len(fc.days) == 0 {
			first = d
		} else if d != last.addDays(1) {
			// a gap would leave dates inside the window unanswerable
			return fmt.Errorf("calendar file line %d: expected %s, got %s", lineNo, last.addDays(1), d)
		}
		last = d

		info := DayInfo{
			Date:          d.toTime(),
			Type:          dayType,
			IsBusinessDay: dayType == DayTypeWorkday,
			Note:          note,
		}
		fc.days[d] = info

		monthKey := fmt.Sprintf("%d-%02d", d.year, d.month)
		monthInfo, ok := fc.data[monthKey]
		if !ok {
			monthInfo = &MonthInfo{Year: d.year, Month: d.month}
			fc.data[monthKey] = monthInfo
		}
		monthInfo.Days = append(monthInfo.Days, info)

		switch dayType {
		case DayTypeWorkday:
			monthInfo.WorkDays++
		case DayTypeWeekend:
			monthInfo.Weekends++
		case DayTypeHoliday:
			monthInfo.Holidays++
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}
	if len(fc.days) == 0 {
		return fmt.Errorf("calendar file %s has no days", fc.filePath)
	}

	fc.window = Window{From: first.toTime(), To: last.toTime()}
	return nil
}

// Window returns the range of dates loaded from the file
func (fc *FileCalendar) Window() Window {
	return fc.window
}

// IsBusinessDay checks if the given date is a business day
func (fc *FileCalendar) IsBusinessDay(date time.Time) (bool, error) {
	dayInfo, err := fc.GetDayInfo(date)
	if err != nil {
		return false, err
	}

	return dayInfo.IsBusinessDay, nil
}

// GetMonthInfo returns calendar info for the entire month
func (fc *FileCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	monthKey := fmt.Sprintf("%d-%02d", year, month)

	monthInfo, ok := fc.data[monthKey]
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if !ok || len(monthInfo.Days) != daysInMonth {
		return nil, &OutOfRangeError{Date: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), Window: fc.window}
	}

	return monthInfo, nil
}

// GetDayInfo returns detailed info for a specific day
func (fc *FileCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	info, ok := fc.days[dateFromTime(date)]
	if !ok {
		return nil, &OutOfRangeError{Date: date, Window: fc.window}
	}

	return &info, nil
}

// WriteTable writes every day of the calendar's window in the format read by FileCalendar
func WriteTable(w io.Writer, cal Calendar) error {
	window := cal.Window()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# business day table %s\n", window)
	for day := window.From; !day.After(window.To); day = day.AddDate(0, 0, 1) {
		info, err := cal.GetDayInfo(day)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", day.Format("2006-01-02"), err)
		}

		line := info.Date.Format("2006-01-02") + " " + info.Type.String()
		if info.Note != "" {
			line += " " + info.Note
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	}

	return bw.Flush()
}
