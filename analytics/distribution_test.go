package analytics

import (
	"testing"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		min, max float64
		want     int64
	}{
		{0, 0, 25},
		{-100, 400, 25},
		{0, 500, 25},
		{0, 500.01, 50},
		{-300, 700, 50},
		{0, 1000, 50},
		{-1200, 1500, 100},
	}
	for _, tt := range tests {
		got := BinWidth(decimal.NewFromFloat(tt.min), decimal.NewFromFloat(tt.max))
		assert.Equal(t, tt.want, got, "range %v..%v", tt.min, tt.max)
	}
}

func TestBuildDistributionWideRange(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		trade("a", 10, day(0)),
		trade("b", 1500, day(1)),
		trade("c", -1200, day(2)),
	}

	buckets := BuildDistribution(trades)
	require.NotEmpty(t, buckets)

	first, last := buckets[0], buckets[len(buckets)-1]
	assertDec(t, "-1200", first.Start)
	assertDec(t, "1500", last.Start)
	assert.Equal(t, "-1200 to -1100", first.Label)
	assert.Len(t, buckets, 28)

	counts := map[string]int{}
	for _, b := range buckets {
		counts[b.Start.String()] = b.Count
	}
	assert.Equal(t, 1, counts["-1200"])
	assert.Equal(t, 1, counts["0"])
	assert.Equal(t, 1, counts["1500"])
	assert.Equal(t, 0, counts["-500"])
}

func TestBuildDistributionKeepsEmptyBuckets(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		trade("a", -30, day(0)),
		trade("b", 5, day(1)),
	}

	buckets := BuildDistribution(trades)
	require.Len(t, buckets, 3)

	assertDec(t, "-50", buckets[0].Start)
	assert.Equal(t, 1, buckets[0].Count)
	assertDec(t, "-25", buckets[1].Start)
	assert.Equal(t, 0, buckets[1].Count)
	assertDec(t, "0", buckets[2].Start)
	assert.Equal(t, "0 to 25", buckets[2].Label)
	assert.Equal(t, 1, buckets[2].Count)
}

func TestBuildDistributionMissingPnLIsZero(t *testing.T) {
	t.Parallel()

	buckets := BuildDistribution([]journal.TradeRecord{noPL("a", day(0))})
	require.Len(t, buckets, 1)
	assertDec(t, "0", buckets[0].Start)
	assert.Equal(t, 1, buckets[0].Count)
}

func TestBuildDistributionEmpty(t *testing.T) {
	t.Parallel()

	buckets := BuildDistribution(nil)
	assert.NotNil(t, buckets)
	assert.Empty(t, buckets)
}

func TestBuildDistributionCountsEveryTrade(t *testing.T) {
	t.Parallel()

	pls := []float64{-612.4, -25, -24.99, 0, 0, 24.99, 25, 333.33, 901}
	var trades []journal.TradeRecord
	for i, pl := range pls {
		trades = append(trades, trade(string(rune('a'+i)), pl, day(i)))
	}
	trades = append(trades, noPL("z", day(0)))

	total := 0
	buckets := BuildDistribution(trades)
	for i, b := range buckets {
		total += b.Count
		if i > 0 {
			assert.True(t, buckets[i-1].Start.LessThan(b.Start))
		}
	}
	assert.Equal(t, ComputeMetrics(trades, Calendar{}).TotalTrades, total)
}

func TestBuildDistributionHugeSpreadOnlyObservedBins(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		trade("a", 0, day(0)),
		trade("b", 1e9, day(1)),
		trade("c", 30, day(2)),
	}
	got := BuildDistribution(trades)

	require.Len(t, got, 2)
	assertDec(t, "0", got[0].Start)
	assert.Equal(t, 2, got[0].Count)
	assertDec(t, "1000000000", got[1].Start)
	assert.Equal(t, 1, got[1].Count)
}

func TestBuildDistributionSeedsUpToLimit(t *testing.T) {
	t.Parallel()

	// 999 bins of width 100 between the extremes: still seeded.
	trades := []journal.TradeRecord{
		trade("a", 0, day(0)),
		trade("b", 99_850, day(1)),
	}
	got := BuildDistribution(trades)
	assert.Len(t, got, 999)
}
