package analytics

import (
	"testing"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withStrategy(t journal.TradeRecord, name string) journal.TradeRecord {
	t.Strategy = name
	return t
}

func TestStrategyName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Breakout", StrategyName(withStrategy(trade("a", 1, day(0)), " Breakout ")))
	assert.Equal(t, NoStrategy, StrategyName(withStrategy(trade("a", 1, day(0)), "")))
	assert.Equal(t, NoStrategy, StrategyName(withStrategy(trade("a", 1, day(0)), "   ")))
}

func TestBuildStrategyStats(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		withStrategy(trade("a", 100, day(0)), "Breakout"),
		withStrategy(trade("b", -40, day(0)), "Breakout"),
		withStrategy(trade("c", 0, day(1)), "Breakout"),
		withStrategy(trade("d", 60, day(1)), "Pullback"),
		withStrategy(trade("e", -20, day(2)), ""),
		withStrategy(noPL("f", day(2)), ""),
	}

	stats := BuildStrategyStats(trades)
	require.Len(t, stats, 3)

	bo := stats[0]
	assert.Equal(t, "Breakout", bo.Name)
	assert.Equal(t, 3, bo.Trades)
	assert.Equal(t, 1, bo.Wins)
	assert.Equal(t, 1, bo.Losses)
	assertDec(t, "60", bo.PnL)
	assert.InDelta(t, 50.0, bo.WinRate, 1e-9)

	// Ties on P&L are ordered by name.
	assert.Equal(t, "Pullback", stats[1].Name)
	assertDec(t, "60", stats[1].PnL)
	assert.InDelta(t, 100.0, stats[1].WinRate, 1e-9)

	none := stats[2]
	assert.Equal(t, NoStrategy, none.Name)
	assert.Equal(t, 2, none.Trades)
	assert.Equal(t, 0, none.Wins)
	assert.Equal(t, 1, none.Losses)
	assert.Equal(t, 0.0, none.WinRate)
}

func TestBuildStrategyStatsInvariants(t *testing.T) {
	t.Parallel()

	names := []string{"A", "B", "", "C", "A", "B", "A"}
	pls := []float64{5, -10, 30, 0, -2, 40, 7}
	var trades []journal.TradeRecord
	for i := range names {
		trades = append(trades, withStrategy(trade(string(rune('a'+i)), pls[i], day(i)), names[i]))
	}

	stats := BuildStrategyStats(trades)

	total := 0
	for i, st := range stats {
		total += st.Trades
		if i > 0 {
			assert.False(t, stats[i-1].PnL.LessThan(st.PnL), "not sorted at %d", i)
		}
	}
	assert.Equal(t, len(trades), total)
	assert.Equal(t, stats, BuildStrategyStats(trades))
}

func TestBuildStrategyStatsEmpty(t *testing.T) {
	t.Parallel()

	stats := BuildStrategyStats(nil)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}

func TestTopStrategies(t *testing.T) {
	t.Parallel()

	stats := []StrategyStat{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	assert.Len(t, TopStrategies(stats, 2), 2)
	assert.Len(t, TopStrategies(stats, 0), 3)
	assert.Len(t, TopStrategies(stats, 10), 3)
	assert.Equal(t, "a", TopStrategies(stats, 1)[0].Name)
}
