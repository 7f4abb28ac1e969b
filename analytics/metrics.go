package analytics

import (
	"math"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
)

// Summary is the fixed-shape performance summary of a set of trades.
// Currency amounts are exact decimals; AvgLoss, GrossLoss, LargestLoss and
// MaxDrawdown are magnitudes.
type Summary struct {
	TotalTrades      int `json:"total_trades"`
	ProfitableTrades int `json:"profitable_trades"`
	LosingTrades     int `json:"losing_trades"`
	BreakEvenTrades  int `json:"break_even_trades"`
	ClosedTrades     int `json:"closed_trades"`
	TradingDays      int `json:"trading_days"`

	// WinRate is a percentage of decisive trades; scratches are left out.
	WinRate      float64 `json:"win_rate"`
	ProfitFactor Ratio   `json:"profit_factor"`

	GrossProfit   decimal.Decimal `json:"gross_profit"`
	GrossLoss     decimal.Decimal `json:"gross_loss"`
	NetPnL        decimal.Decimal `json:"net_pnl"`
	AvgWin        decimal.Decimal `json:"avg_win"`
	AvgLoss       decimal.Decimal `json:"avg_loss"`
	LargestWin    decimal.Decimal `json:"largest_win"`
	LargestLoss   decimal.Decimal `json:"largest_loss"`
	ExpectedValue decimal.Decimal `json:"expected_value"`
	NetDailyPnL   decimal.Decimal `json:"net_daily_pnl"`
	MaxDrawdown   decimal.Decimal `json:"max_drawdown"`

	AvgTradeTimeMinutes  float64 `json:"avg_trade_time_minutes"`
	MaxConsecutiveWins   int     `json:"max_consecutive_wins"`
	MaxConsecutiveLosses int     `json:"max_consecutive_losses"`
}

// ComputeMetrics summarizes trades. Trades are expected in chronological
// order for the streak and drawdown figures; everything else is order free.
// It never fails: empty input and zero denominators resolve to 0, except the
// profit factor, which is +Inf when there are profits and no losses.
func ComputeMetrics(trades []journal.TradeRecord, cal Calendar) Summary {
	s := Summary{TotalTrades: len(trades)}

	var (
		days         = make(map[int64]struct{})
		heldMinutes  float64
		wins, losses int
	)

	for _, t := range trades {
		pl := t.PnL()
		s.NetPnL = s.NetPnL.Add(pl)

		switch t.Outcome() {
		case journal.Win:
			s.ProfitableTrades++
			s.GrossProfit = s.GrossProfit.Add(pl)
			if pl.GreaterThan(s.LargestWin) {
				s.LargestWin = pl
			}
			wins++
			losses = 0
		case journal.Loss:
			s.LosingTrades++
			s.GrossLoss = s.GrossLoss.Add(pl.Abs())
			if pl.Abs().GreaterThan(s.LargestLoss) {
				s.LargestLoss = pl.Abs()
			}
			losses++
			wins = 0
		default:
			s.BreakEvenTrades++
			wins, losses = 0, 0
		}
		s.MaxConsecutiveWins = max(s.MaxConsecutiveWins, wins)
		s.MaxConsecutiveLosses = max(s.MaxConsecutiveLosses, losses)

		days[cal.Date(t.OpenTime).Unix()] = struct{}{}

		if d, ok := t.Duration(); ok {
			s.ClosedTrades++
			heldMinutes += d.Minutes()
		}
	}

	if decisive := s.ProfitableTrades + s.LosingTrades; decisive > 0 {
		s.WinRate = float64(s.ProfitableTrades) / float64(decisive) * 100
	}
	s.ProfitFactor = profitFactor(s.GrossProfit, s.GrossLoss)
	s.AvgWin = safeDiv(s.GrossProfit, s.ProfitableTrades)
	s.AvgLoss = safeDiv(s.GrossLoss, s.LosingTrades)
	s.ExpectedValue = safeDiv(s.NetPnL, s.TotalTrades)

	s.TradingDays = len(days)
	s.NetDailyPnL = safeDiv(s.NetPnL, s.TradingDays)

	if s.ClosedTrades > 0 {
		s.AvgTradeTimeMinutes = heldMinutes / float64(s.ClosedTrades)
	}

	s.MaxDrawdown = MaxDrawdown(BuildEquityCurve(trades))
	return s
}

func profitFactor(grossProfit, grossLoss decimal.Decimal) Ratio {
	if grossLoss.IsZero() {
		if grossProfit.IsPositive() {
			return Ratio(math.Inf(1))
		}
		return 0
	}
	f, _ := grossProfit.Div(grossLoss).Float64()
	return Ratio(f)
}

func safeDiv(v decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return v.Div(decimal.NewFromInt(int64(n)))
}
