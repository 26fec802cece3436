package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func karachi(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Asia/Karachi")
	require.NoError(t, err)
	return loc
}

func TestDayKeyFixedZone(t *testing.T) {
	c := NewClock(karachi(t))

	// 2025-03-09 23:30 UTC is already 2025-03-10 04:30 in Karachi (UTC+5).
	utcEvening := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", c.DayKey(utcEvening))
	assert.Equal(t, "2025-03-09", c.YesterdayKey(utcEvening))
	assert.Equal(t, "2025-03", c.MonthKey(utcEvening))
}

func TestDayKeyMidnightBoundary(t *testing.T) {
	loc := karachi(t)
	c := NewClock(loc)

	before := time.Date(2025, 6, 30, 23, 59, 0, 0, loc)
	after := time.Date(2025, 7, 1, 0, 1, 0, 0, loc)

	// Two minutes apart but across local midnight: different day and month.
	assert.NotEqual(t, c.DayKey(before), c.DayKey(after))
	assert.Equal(t, "2025-06-30", c.DayKey(before))
	assert.Equal(t, "2025-07-01", c.DayKey(after))
	assert.NotEqual(t, c.MonthKey(before), c.MonthKey(after))
}

func TestSameUnitSameKey(t *testing.T) {
	loc := karachi(t)
	c := NewClock(loc)

	morning := time.Date(2025, 6, 30, 0, 1, 0, 0, loc)
	night := time.Date(2025, 6, 30, 23, 59, 0, 0, loc)

	assert.Equal(t, c.DayKey(morning), c.DayKey(night))
	assert.Equal(t, c.MonthKey(morning), c.MonthKey(night))
	assert.Equal(t, c.WeekKey(morning), c.WeekKey(night))
}

func TestWeekStart(t *testing.T) {
	loc := karachi(t)
	c := NewClock(loc)

	// 2025-06-30 is a Monday.
	monday := time.Date(2025, 6, 30, 15, 0, 0, 0, loc)
	assert.Equal(t, "2025-06-30", c.WeekKey(monday))

	// Sunday belongs to the week that began the previous Monday.
	sunday := time.Date(2025, 7, 6, 10, 0, 0, 0, loc)
	assert.Equal(t, "2025-06-30", c.WeekKey(sunday))

	// The following Monday starts a new week.
	nextMonday := time.Date(2025, 7, 7, 0, 1, 0, 0, loc)
	assert.Equal(t, "2025-07-07", c.WeekKey(nextMonday))

	ws := c.WeekStart(sunday)
	assert.Equal(t, time.Monday, ws.Weekday())
	assert.Equal(t, 0, ws.Hour())
}

func TestHourAndDayOfYear(t *testing.T) {
	loc := karachi(t)
	c := NewClock(loc)

	// 20:00 Karachi is 15:00 UTC; the clock must report the zone's hour.
	at := time.Date(2025, 6, 30, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, 20, c.Hour(at))

	jan1 := time.Date(2025, 1, 1, 12, 0, 0, 0, loc)
	assert.Equal(t, 1, c.DayOfYear(jan1))
}

func TestNilLocationDefaultsUTC(t *testing.T) {
	c := NewClock(nil)
	at := time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-09", c.DayKey(at))
}
