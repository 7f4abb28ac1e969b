package analytics

import (
	"testing"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Mon 2024-03-11 .. Sun 2024-03-17
var monday = time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC)

func trade(id string, pl float64, open time.Time) journal.TradeRecord {
	return journal.TradeRecord{
		TradeID:    id,
		Instrument: "EUR_USD",
		OpenTime:   open,
		RealizedPL: journal.PL(pl),
	}
}

func noPL(id string, open time.Time) journal.TradeRecord {
	return journal.TradeRecord{TradeID: id, Instrument: "EUR_USD", OpenTime: open}
}

func day(n int) time.Time {
	return monday.AddDate(0, 0, n)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got),
		append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}
