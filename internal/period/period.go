// Package period derives calendar-aligned keys from wall-clock time in a
// fixed time zone. All schedule boundaries (day, ISO week, month) are
// computed against that zone regardless of where the process runs.
package period

import "time"

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Clock resolves period keys in one fixed location.
type Clock struct {
	loc *time.Location
}

// NewClock returns a Clock bound to loc. A nil location falls back to UTC.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{loc: loc}
}

// Location returns the zone the clock resolves keys in.
func (c Clock) Location() *time.Location {
	return c.loc
}

// DayKey returns t's calendar day as YYYY-MM-DD.
func (c Clock) DayKey(t time.Time) string {
	return t.In(c.loc).Format(dayLayout)
}

// YesterdayKey returns the day key of the calendar day before t.
func (c Clock) YesterdayKey(t time.Time) string {
	return c.DayKey(t.In(c.loc).AddDate(0, 0, -1))
}

// MonthKey returns t's calendar month as YYYY-MM.
func (c Clock) MonthKey(t time.Time) string {
	return t.In(c.loc).Format(monthLayout)
}

// WeekStart returns midnight of the Monday starting t's ISO week.
func (c Clock) WeekStart(t time.Time) time.Time {
	lt := t.In(c.loc)
	wd := int(lt.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week that started the previous Monday
	}
	monday := lt.AddDate(0, 0, 1-wd)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, c.loc)
}

// WeekKey returns the day key of t's ISO week start, identifying the week.
func (c Clock) WeekKey(t time.Time) string {
	return c.WeekStart(t).Format(dayLayout)
}

// DayOfYear returns t's ordinal day within its year, 1-based.
func (c Clock) DayOfYear(t time.Time) int {
	return t.In(c.loc).YearDay()
}

// Hour returns t's hour of day (0-23) in the fixed zone.
func (c Clock) Hour(t time.Time) int {
	return t.In(c.loc).Hour()
}
