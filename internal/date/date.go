// Package date provides calendar-date arithmetic for loan due-date tracking.
// A Date is a plain civil date (no time of day, no timezone) serialized as
// "2006-01-02". Day-difference math uses ceiling division on the millisecond
// gap so a loan due later today still counts as 0 days left, not -1.
package date

import (
	"encoding/json/v2"
	"fmt"
	"time"
)

// Layout is the wire format for dates.
const Layout = "2006-01-02"

const millisPerDay = 24 * 60 * 60 * 1000

// Date is a calendar date without time-of-day or zone information.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New creates a Date from year, month, and day.
// Out-of-range values are normalized the way time.Date normalizes them.
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Of truncates a time.Time to its calendar date.
func Of(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current calendar date.
func Today() Date {
	return Of(time.Now())
}

// Parse parses a "2006-01-02" string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Of(t), nil
}

// String returns the date in "2006-01-02" form.
func (d Date) String() string {
	return d.midnight().Format(Layout)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// AddDays returns the date n calendar days later (or earlier when n is
// negative). Month and year boundaries roll over correctly.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return Of(t)
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

// midnight returns the date at 00:00:00 UTC.
func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of days from a to b, rounding up on any
// partial day. For two plain dates the difference is always whole, so the
// result is exact; the ceiling only matters for DaysUntil.
func DaysBetween(a, b Date) int {
	return ceilDays(b.midnight().Sub(a.midnight()))
}

// DaysUntil returns the number of days from the instant now until the start
// of the given date, rounded up. A date later today yields 0, tomorrow 1,
// and yesterday -1. The reference point for the date is midnight in now's
// location so the comparison stays on the local calendar.
func DaysUntil(d Date, now time.Time) int {
	target := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, now.Location())
	return ceilDays(target.Sub(now))
}

// ceilDays converts a duration to whole days using ceiling division on
// milliseconds. Integer division already truncates toward zero, which is the
// ceiling for negative values; positive remainders round up.
func ceilDays(diff time.Duration) int {
	ms := diff.Milliseconds()
	days := ms / millisPerDay
	if ms%millisPerDay > 0 {
		days++
	}
	return int(days)
}

// MarshalJSON encodes the date as a "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "2006-01-02" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
