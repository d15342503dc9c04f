package fare

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/username/honorary-calc/internal/calendar"
)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	logger := zaptest.NewLogger(t)

	cal, err := calendar.NewFrenchCalendar(calendar.DefaultWindow, logger)
	require.NoError(t, err)

	engine, err := NewEngine(cal, DefaultShiftRule, logger)
	require.NoError(t, err)
	return engine
}

func TestCompute_EmptyMission(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Compute(at(2019, time.May, 2, 8), at(2019, time.May, 2, 8), DefaultFares, true)
	require.NoError(t, err)

	assert.Equal(t, 0, result.HoursWorked)
	assert.Equal(t, int64(0), result.Total)
	assert.Zero(t, result.Amount)
	assert.Empty(t, result.Buckets)
	assert.True(t, result.SingleDay)
	assert.Equal(t, "Start date is business day.", result.StartStatus)
}

func TestCompute_InvalidRange(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Compute(at(2019, time.May, 2, 10), at(2019, time.May, 1, 10), DefaultFares, true)

	var rangeErr *InvalidRangeError
	require.True(t, errors.As(err, &rangeErr), "got %v", err)
	assert.Equal(t, at(2019, time.May, 2, 10), rangeErr.Start)
	assert.Equal(t, at(2019, time.May, 1, 10), rangeErr.End)
}

func TestCompute_InvalidRangeSameDay(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Compute(at(2019, time.May, 2, 10), at(2019, time.May, 2, 9), DefaultFares, true)

	var rangeErr *InvalidRangeError
	assert.True(t, errors.As(err, &rangeErr), "got %v", err)
}

func TestCompute_UnsupportedSpan(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Compute(at(2019, time.May, 2, 22), at(2019, time.May, 4, 1), DefaultFares, true)

	var spanErr *UnsupportedSpanError
	require.True(t, errors.As(err, &spanErr), "got %v", err)
	assert.Equal(t, 3, spanErr.Days)
}

func TestCompute_InvalidInstant(t *testing.T) {
	engine := newTestEngine(t)

	start := time.Date(2019, time.May, 2, 8, 30, 0, 0, time.UTC)
	_, err := engine.Compute(start, at(2019, time.May, 2, 12), DefaultFares, true)

	var instantErr *InvalidInstantError
	require.True(t, errors.As(err, &instantErr), "got %v", err)
	assert.Equal(t, start, instantErr.Instant)
}

func TestCompute_OutOfRange(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Compute(at(2025, time.June, 3, 8), at(2025, time.June, 3, 12), DefaultFares, true)

	var rangeErr *calendar.OutOfRangeError
	require.True(t, errors.As(err, &rangeErr), "got %v", err)
	assert.Equal(t, 2025, rangeErr.Date.Year())
}

func TestCompute_EndOutOfRange(t *testing.T) {
	engine := newTestEngine(t)

	// 2021-01-03 is the last day of the window
	_, err := engine.Compute(at(2021, time.January, 3, 22), at(2021, time.January, 4, 2), DefaultFares, true)

	var rangeErr *calendar.OutOfRangeError
	require.True(t, errors.As(err, &rangeErr), "got %v", err)
	assert.Equal(t, 4, rangeErr.Date.Day())
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name           string
		start          time.Time
		end            time.Time
		firstHourBonus bool
		wantHours      int
		wantAmount     float64
		wantTotal      int64
		wantFirst      Shift
		wantBuckets    []DayBucket
	}{
		{
			name:           "business day, day shift only",
			start:          at(2019, time.May, 2, 8),
			end:            at(2019, time.May, 2, 12),
			firstHourBonus: true,
			wantHours:      4,
			wantAmount:     42 + 3*30,
			wantTotal:      132,
			wantFirst:      ShiftDay,
			wantBuckets: []DayBucket{
				{Date: at(2019, time.May, 2, 0), BusinessDay: true, DayHours: 4, FirstHourShift: ShiftDay, FirstHourBonus: true, Fee: 132},
			},
		},
		{
			name:           "business day without first hour bonus",
			start:          at(2019, time.May, 2, 8),
			end:            at(2019, time.May, 2, 12),
			firstHourBonus: false,
			wantHours:      4,
			wantAmount:     4 * 30,
			wantTotal:      120,
			wantFirst:      ShiftDay,
			wantBuckets: []DayBucket{
				{Date: at(2019, time.May, 2, 0), BusinessDay: true, DayHours: 4, FirstHourShift: ShiftDay, Fee: 120},
			},
		},
		{
			name:           "morning starting at night",
			start:          at(2019, time.May, 2, 5),
			end:            at(2019, time.May, 2, 9),
			firstHourBonus: true,
			wantHours:      4,
			wantAmount:     49.5 + 37.5 + 2*30,
			wantTotal:      147,
			wantFirst:      ShiftNight,
			wantBuckets: []DayBucket{
				{Date: at(2019, time.May, 2, 0), BusinessDay: true, DayHours: 2, NightHours: 2, FirstHourShift: ShiftNight, FirstHourBonus: true, Fee: 147},
			},
		},
		{
			name:           "evening crossing 22h, truncated total",
			start:          at(2019, time.May, 2, 20),
			end:            at(2019, time.May, 2, 23),
			firstHourBonus: true,
			wantHours:      3,
			wantAmount:     42 + 30 + 37.5,
			wantTotal:      109,
			wantFirst:      ShiftDay,
			wantBuckets: []DayBucket{
				{Date: at(2019, time.May, 2, 0), BusinessDay: true, DayHours: 2, NightHours: 1, FirstHourShift: ShiftDay, FirstHourBonus: true, Fee: 109.5},
			},
		},
		{
			name:           "two business days crossing midnight",
			start:          at(2019, time.May, 2, 23),
			end:            at(2019, time.May, 3, 2),
			firstHourBonus: true,
			wantHours:      3,
			wantAmount:     49.5 + 2*37.5,
			wantTotal:      124,
			wantFirst:      ShiftNight,
			wantBuckets: []DayBucket{
				{Date: at(2019, time.May, 2, 0), BusinessDay: true, NightHours: 1, FirstHourShift: ShiftNight, FirstHourBonus: true, Fee: 49.5},
				{Date: at(2019, time.May, 3, 0), BusinessDay: true, NightHours: 2, Fee: 75},
			},
		},
		{
			name:           "labour day night into business day",
			start:          at(2019, time.May, 1, 23),
			end:            at(2019, time.May, 2, 2),
			firstHourBonus: true,
			wantHours:      3,
			wantAmount:     57 + 2*37.5,
			wantTotal:      132,
			wantFirst:      ShiftNight,
			wantBuckets: []DayBucket{
				{Date: at(2019, time.May, 1, 0), BusinessDay: false, NightHours: 1, FirstHourShift: ShiftNight, FirstHourBonus: true, Fee: 57},
				{Date: at(2019, time.May, 2, 0), BusinessDay: true, NightHours: 2, Fee: 75},
			},
		},
		{
			name:           "holiday start date uses holiday table",
			start:          at(2020, time.May, 1, 10),
			end:            at(2020, time.May, 1, 14),
			firstHourBonus: true,
			wantHours:      4,
			wantAmount:     49.5 + 3*37.5,
			wantTotal:      162,
			wantFirst:      ShiftDay,
			wantBuckets: []DayBucket{
				{Date: at(2020, time.May, 1, 0), BusinessDay: false, DayHours: 4, FirstHourShift: ShiftDay, FirstHourBonus: true, Fee: 162},
			},
		},
		{
			name:           "sunday night into monday morning",
			start:          at(2019, time.May, 5, 22),
			end:            at(2019, time.May, 6, 9),
			firstHourBonus: true,
			wantHours:      11,
			wantAmount:     57 + 45 + 7*37.5 + 2*30,
			wantTotal:      424,
			wantFirst:      ShiftNight,
			wantBuckets: []DayBucket{
				{Date: at(2019, time.May, 5, 0), BusinessDay: false, NightHours: 2, FirstHourShift: ShiftNight, FirstHourBonus: true, Fee: 102},
				{Date: at(2019, time.May, 6, 0), BusinessDay: true, DayHours: 2, NightHours: 7, Fee: 322.5},
			},
		},
		{
			name:           "ending exactly at midnight",
			start:          at(2019, time.May, 2, 22),
			end:            at(2019, time.May, 3, 0),
			firstHourBonus: true,
			wantHours:      2,
			wantAmount:     49.5 + 37.5,
			wantTotal:      87,
			wantFirst:      ShiftNight,
			wantBuckets: []DayBucket{
				{Date: at(2019, time.May, 2, 0), BusinessDay: true, NightHours: 2, FirstHourShift: ShiftNight, FirstHourBonus: true, Fee: 87},
				{Date: at(2019, time.May, 3, 0), BusinessDay: true, Fee: 0},
			},
		},
	}

	engine := newTestEngine(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Compute(tt.start, tt.end, DefaultFares, tt.firstHourBonus)
			require.NoError(t, err)

			assert.Equal(t, tt.wantHours, result.HoursWorked)
			assert.InDelta(t, tt.wantAmount, result.Amount, 1e-9)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantFirst, result.FirstShift)
			assert.Equal(t, tt.wantBuckets, result.Buckets)
			assert.Equal(t, len(tt.wantBuckets) == 1, result.SingleDay)
		})
	}
}

func TestCompute_Statuses(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Compute(at(2019, time.May, 1, 23), at(2019, time.May, 2, 2), DefaultFares, true)
	require.NoError(t, err)

	assert.False(t, result.StartBusinessDay)
	assert.True(t, result.EndBusinessDay)
	assert.Equal(t, "Start date is weekend or holiday.", result.StartStatus)
	assert.Equal(t, "End date is business day.", result.EndStatus)
}

func TestCompute_Idempotent(t *testing.T) {
	engine := newTestEngine(t)

	start, end := at(2019, time.May, 5, 22), at(2019, time.May, 6, 9)
	first, err := engine.Compute(start, end, DefaultFares, true)
	require.NoError(t, err)
	second, err := engine.Compute(start, end, DefaultFares, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_HoursAreConserved(t *testing.T) {
	engine := newTestEngine(t)

	for startHour := 0; startHour < 24; startHour++ {
		start := at(2019, time.May, 2, startHour)
		lastEnd := at(2019, time.May, 3, 23)
		for end := start; !end.After(lastEnd); end = end.Add(time.Hour) {
			result, err := engine.Compute(start, end, DefaultFares, true)
			require.NoError(t, err)

			sum := 0
			for _, b := range result.Buckets {
				sum += b.Hours()
			}
			require.Equal(t, result.HoursWorked, sum, "start=%v end=%v", start, end)
			require.LessOrEqual(t, result.Total, int64(result.Amount))
		}
	}
}

func TestCompute_WallClockIsKept(t *testing.T) {
	engine := newTestEngine(t)

	paris := time.FixedZone("CEST", 2*3600)
	start := time.Date(2019, time.May, 2, 23, 0, 0, 0, paris)
	end := time.Date(2019, time.May, 3, 2, 0, 0, 0, paris)

	result, err := engine.Compute(start, end, DefaultFares, true)
	require.NoError(t, err)

	assert.Equal(t, at(2019, time.May, 2, 23), result.Start)
	assert.Len(t, result.Buckets, 2)
	assert.Equal(t, int64(124), result.Total)
}

func TestCompute_CustomShiftRule(t *testing.T) {
	logger := zap.NewNop()
	cal, err := calendar.NewFrenchCalendar(calendar.DefaultWindow, logger)
	require.NoError(t, err)

	engine, err := NewEngine(cal, ShiftRule{DayStart: 8, NightStart: 20}, logger)
	require.NoError(t, err)

	result, err := engine.Compute(at(2019, time.May, 2, 7), at(2019, time.May, 2, 9), DefaultFares, true)
	require.NoError(t, err)

	assert.Equal(t, ShiftNight, result.FirstShift)
	assert.InDelta(t, 49.5+30, result.Amount, 1e-9)
	assert.Equal(t, int64(79), result.Total)
}

func TestCompute_CustomFares(t *testing.T) {
	engine := newTestEngine(t)

	fares := Fares{
		Normal:  Table{DayFirstHour: 40, DaySubsequentHour: 32, NightFirstHour: 49.5, NightSubsequentHour: 37.5},
		Holiday: DefaultFares.Holiday,
	}

	result, err := engine.Compute(at(2019, time.May, 2, 8), at(2019, time.May, 2, 12), fares, true)
	require.NoError(t, err)
	assert.Equal(t, int64(40+3*32), result.Total)
}

func TestCompute_ConcurrentCallers(t *testing.T) {
	engine := newTestEngine(t)

	want, err := engine.Compute(at(2019, time.May, 5, 22), at(2019, time.May, 6, 9), DefaultFares, true)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := engine.Compute(at(2019, time.May, 5, 22), at(2019, time.May, 6, 9), DefaultFares, true)
			if assert.NoError(t, err) {
				assert.Equal(t, want, got)
			}
		}()
	}
	wg.Wait()
}

type failingCalendar struct {
	calendar.Calendar
}

func (failingCalendar) IsBusinessDay(time.Time) (bool, error) {
	return false, errors.New("calendar unavailable")
}

func TestCompute_CalendarErrorIsWrapped(t *testing.T) {
	engine, err := NewEngine(failingCalendar{}, DefaultShiftRule, zap.NewNop())
	require.NoError(t, err)

	_, err = engine.Compute(at(2019, time.May, 2, 8), at(2019, time.May, 2, 12), DefaultFares, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check start date")
}

func TestNewEngine_InvalidShiftRule(t *testing.T) {
	_, err := NewEngine(failingCalendar{}, ShiftRule{DayStart: 22, NightStart: 7}, zap.NewNop())
	assert.Error(t, err)
}
