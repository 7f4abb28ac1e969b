package analytics

import (
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

// Period is a reporting window relative to a reference time.
type Period string

const (
	PeriodAll     Period = "all"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Periods lists the supported keys in display order.
var Periods = []Period{PeriodAll, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}

// ValidPeriod reports whether s names one of Periods, ignoring case and
// surrounding space.
func ValidPeriod(s string) bool {
	key := Period(strings.ToLower(strings.TrimSpace(s)))
	for _, p := range Periods {
		if p == key {
			return true
		}
	}
	return false
}

// ParsePeriod maps a key to a Period. Unknown keys fall back to PeriodAll.
func ParsePeriod(s string) Period {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return p
	default:
		return PeriodAll
	}
}

// PeriodRange returns the inclusive [start, end] of the calendar period that
// contains now. ok is false for PeriodAll, which has no bounds.
func (c Calendar) PeriodRange(p Period, now time.Time) (start, end time.Time, ok bool) {
	today := c.Date(now)
	y, m, _ := today.Date()
	loc := c.Loc()

	switch ParsePeriod(string(p)) {
	case PeriodWeek:
		offset := (int(today.Weekday()) - int(c.WeekStart) + 7) % 7
		start = today.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 7)
	case PeriodMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	case PeriodQuarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		start = time.Date(y, qm, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 3, 0)
	case PeriodYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0)
	default:
		return time.Time{}, time.Time{}, false
	}
	return start, end.Add(-time.Nanosecond), true
}

// SelectPeriod keeps the trades opened inside the period containing now.
// PeriodAll returns trades as given. Input order is preserved.
func SelectPeriod(trades []journal.TradeRecord, p Period, now time.Time, cal Calendar) []journal.TradeRecord {
	start, end, ok := cal.PeriodRange(p, now)
	if !ok {
		return trades
	}

	out := make([]journal.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if t.OpenTime.Before(start) || t.OpenTime.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}
