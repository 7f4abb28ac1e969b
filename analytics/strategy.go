package analytics

import (
	"sort"
	"strings"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
)

// NoStrategy labels trades that are not linked to a playbook.
const NoStrategy = "No Strategy"

// StrategyStat is the per-strategy scorecard.
type StrategyStat struct {
	Name    string          `json:"name"`
	Trades  int             `json:"trades"`
	Wins    int             `json:"wins"`
	Losses  int             `json:"losses"`
	PnL     decimal.Decimal `json:"pnl"`
	WinRate float64         `json:"win_rate"`
}

// StrategyName is the group a trade is reported under.
func StrategyName(t journal.TradeRecord) string {
	if name := strings.TrimSpace(t.Strategy); name != "" {
		return name
	}
	return NoStrategy
}

// BuildStrategyStats groups trades by strategy and ranks the groups by net
// P&L, best first; equal P&L is ordered by name. Break-even trades count
// toward Trades only.
func BuildStrategyStats(trades []journal.TradeRecord) []StrategyStat {
	groups := make(map[string]*StrategyStat)
	for _, t := range trades {
		name := StrategyName(t)
		st, ok := groups[name]
		if !ok {
			st = &StrategyStat{Name: name}
			groups[name] = st
		}

		st.Trades++
		st.PnL = st.PnL.Add(t.PnL())
		switch t.Outcome() {
		case journal.Win:
			st.Wins++
		case journal.Loss:
			st.Losses++
		}
	}

	out := make([]StrategyStat, 0, len(groups))
	for _, st := range groups {
		if decisive := st.Wins + st.Losses; decisive > 0 {
			st.WinRate = float64(st.Wins) / float64(decisive) * 100
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].PnL.Cmp(out[j].PnL); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopStrategies truncates ranked stats to the best n. n <= 0 keeps them all.
func TopStrategies(stats []StrategyStat, n int) []StrategyStat {
	if n <= 0 || n >= len(stats) {
		return stats
	}
	return stats[:n]
}
