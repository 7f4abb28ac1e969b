package journal

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrTradeNotFound is returned by stores when a trade ID has no record.
var ErrTradeNotFound = errors.New("trade not found")

// TradeRecord is one executed trade as logged by the trader.
//
// CloseTime is nil while the trade is still open. RealizedPL is nil when no
// P&L was recorded, which is not the same thing as a scratch (zero) trade.
type TradeRecord struct {
	TradeID    string           `json:"trade_id"`
	Instrument string           `json:"instrument"`
	Units      float64          `json:"units"`
	EntryPrice float64          `json:"entry_price"`
	ExitPrice  float64          `json:"exit_price"`
	OpenTime   time.Time        `json:"open_time"`
	CloseTime  *time.Time       `json:"close_time,omitempty"`
	RealizedPL *decimal.Decimal `json:"realized_pl,omitempty"`
	Strategy   string           `json:"strategy,omitempty"`
	Reason     string           `json:"reason,omitempty"`
	Notes      string           `json:"notes,omitempty"`
}

// PnL returns the realized P&L, treating a missing value as zero.
func (t TradeRecord) PnL() decimal.Decimal {
	if t.RealizedPL == nil {
		return decimal.Zero
	}
	return *t.RealizedPL
}

// IsClosed reports whether the trade has an exit time.
func (t TradeRecord) IsClosed() bool {
	return t.CloseTime != nil
}

// Duration is the holding time of a closed trade. Exits recorded before the
// entry yield a negative duration.
func (t TradeRecord) Duration() (time.Duration, bool) {
	if t.CloseTime == nil {
		return 0, false
	}
	return t.CloseTime.Sub(t.OpenTime), true
}

// Outcome labels a trade by the sign of its P&L.
type Outcome int

const (
	BreakEven Outcome = iota
	Win
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "breakeven"
	}
}

// Outcome classifies the trade. Trades without a recorded P&L are break-even.
func (t TradeRecord) Outcome() Outcome {
	switch t.PnL().Sign() {
	case 1:
		return Win
	case -1:
		return Loss
	default:
		return BreakEven
	}
}

// PL is a convenience for building records with a known P&L.
func PL(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// At is a convenience for building records with a close time.
func At(t time.Time) *time.Time {
	return &t
}

// Journal accepts trades as they are logged.
type Journal interface {
	RecordTrade(ctx context.Context, t TradeRecord) error
	Close() error
}

// Store is a Journal that can also be queried.
type Store interface {
	Journal
	GetTrade(ctx context.Context, tradeID string) (TradeRecord, error)
	ListTrades(ctx context.Context) ([]TradeRecord, error)
	ListTradesOpenedBetween(ctx context.Context, start, end time.Time) ([]TradeRecord, error)
	DeleteTrade(ctx context.Context, tradeID string) error
}
