package analytics

import (
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
)

// WeekdayBucket aggregates trades by the weekday they were opened on.
type WeekdayBucket struct {
	Day     string          `json:"day"`
	Weekday time.Weekday    `json:"weekday"`
	PnL     decimal.Decimal `json:"pnl"`
	Count   int             `json:"count"`
}

var tradingWeek = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	time.Saturday, time.Sunday,
}

// BuildWeekdayStats returns Monday-first buckets. Monday through Friday are
// always present; Saturday and Sunday only when something traded on them.
func BuildWeekdayStats(trades []journal.TradeRecord, cal Calendar) []WeekdayBucket {
	var byDay [7]WeekdayBucket
	for d := range byDay {
		byDay[d] = WeekdayBucket{Day: time.Weekday(d).String(), Weekday: time.Weekday(d)}
	}

	for _, t := range trades {
		b := &byDay[cal.Weekday(t.OpenTime)]
		b.PnL = b.PnL.Add(t.PnL())
		b.Count++
	}

	out := make([]WeekdayBucket, 0, len(tradingWeek))
	for _, d := range tradingWeek {
		b := byDay[d]
		if isWeekend(d) && b.Count == 0 {
			continue
		}
		out = append(out, b)
	}
	return out
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
