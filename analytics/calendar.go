// Package analytics derives performance statistics from journal trades.
//
// Every function here is a pure function of its arguments: nothing reads the
// clock, the local timezone or shared state, so results are safe to compute
// concurrently and are recomputed on every call.
package analytics

import (
	"strings"
	"time"
)

// Calendar fixes how timestamps are mapped onto calendar days and weeks.
// The zero value buckets in UTC with weeks starting on Sunday.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

// Loc is the zone days are counted in.
func (c Calendar) Loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// In converts t to the calendar's location.
func (c Calendar) In(t time.Time) time.Time {
	return t.In(c.Loc())
}

// Date returns midnight of the calendar day containing t.
func (c Calendar) Date(t time.Time) time.Time {
	t = c.In(t)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.Loc())
}

// Weekday of t in the calendar's location.
func (c Calendar) Weekday(t time.Time) time.Weekday {
	return c.In(t).Weekday()
}

// ParseWeekday maps names like "monday" or "Mon" to a weekday.
func ParseWeekday(s string) (time.Weekday, bool) {
	if len(s) < 3 {
		return time.Sunday, false
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := d.String()
		if len(s) <= len(name) && strings.EqualFold(name[:len(s)], s) {
			return d, true
		}
	}
	return time.Sunday, false
}
