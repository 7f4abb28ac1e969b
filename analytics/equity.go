package analytics

import (
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
)

// EquityPoint is one step of the running P&L total.
type EquityPoint struct {
	Index      int             `json:"index"` // 1-based trade number
	Time       time.Time       `json:"time"`
	Cumulative decimal.Decimal `json:"cumulative"`
	PnL        decimal.Decimal `json:"pnl"`
}

// BuildEquityCurve walks trades in the order given, which callers keep
// sorted by open time, and emits one point per trade.
func BuildEquityCurve(trades []journal.TradeRecord) []EquityPoint {
	out := make([]EquityPoint, 0, len(trades))

	cum := decimal.Zero
	for i, t := range trades {
		pl := t.PnL()
		cum = cum.Add(pl)
		out = append(out, EquityPoint{
			Index:      i + 1,
			Time:       t.OpenTime,
			Cumulative: cum,
			PnL:        pl,
		})
	}
	return out
}

// MaxDrawdown is the largest peak-to-trough fall of the curve, measured from
// a starting equity of zero.
func MaxDrawdown(points []EquityPoint) decimal.Decimal {
	peak := decimal.Zero
	dd := decimal.Zero
	for _, p := range points {
		if p.Cumulative.GreaterThan(peak) {
			peak = p.Cumulative
		}
		if d := peak.Sub(p.Cumulative); d.GreaterThan(dd) {
			dd = d
		}
	}
	return dd
}
