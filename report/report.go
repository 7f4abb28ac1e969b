// Package report bundles the analytics of one reporting period and renders
// it as text, Org-mode or JSON.
package report

import (
	"sort"
	"time"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

// Report is everything the analytics produce for one period.
type Report struct {
	Period    analytics.Period `json:"period"`
	Start     *time.Time       `json:"start,omitempty"`
	End       *time.Time       `json:"end,omitempty"`
	Generated time.Time        `json:"generated"`
	Timezone  string           `json:"timezone"`

	Summary      analytics.Summary              `json:"summary"`
	Equity       []analytics.EquityPoint        `json:"equity"`
	Distribution []analytics.DistributionBucket `json:"distribution"`
	Weekdays     []analytics.WeekdayBucket      `json:"weekdays"`
	Strategies   []analytics.StrategyStat       `json:"strategies"`
}

// Options controls how a Report is built.
type Options struct {
	Period   analytics.Period
	Now      time.Time
	Calendar analytics.Calendar

	// TopStrategies limits the strategy table; 0 keeps every strategy.
	TopStrategies int
}

// Build sorts trades by open time, keeps those in the requested period and
// runs every aggregator over the result. trades is not modified.
func Build(trades []journal.TradeRecord, opts Options) Report {
	sorted := Chronological(trades)

	period := analytics.ParsePeriod(string(opts.Period))
	selected := analytics.SelectPeriod(sorted, period, opts.Now, opts.Calendar)

	r := Report{
		Period:    period,
		Generated: opts.Now,
		Timezone:  opts.Calendar.Loc().String(),

		Summary:      analytics.ComputeMetrics(selected, opts.Calendar),
		Equity:       analytics.BuildEquityCurve(selected),
		Distribution: analytics.BuildDistribution(selected),
		Weekdays:     analytics.BuildWeekdayStats(selected, opts.Calendar),
		Strategies:   analytics.TopStrategies(analytics.BuildStrategyStats(selected), opts.TopStrategies),
	}
	if start, end, ok := opts.Calendar.PeriodRange(period, opts.Now); ok {
		r.Start, r.End = &start, &end
	}
	return r
}

// Chronological returns a copy of trades ordered by open time. Trades opened
// at the same instant keep their relative order.
func Chronological(trades []journal.TradeRecord) []journal.TradeRecord {
	out := make([]journal.TradeRecord, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OpenTime.Before(out[j].OpenTime)
	})
	return out
}
