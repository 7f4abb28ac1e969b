package analytics

import (
	"fmt"
	"sort"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
)

// DistributionBucket counts trades whose P&L falls in [Start, Start+width).
type DistributionBucket struct {
	Label string          `json:"label"`
	Start decimal.Decimal `json:"start"`
	Count int             `json:"count"`
}

// MaxSeededBuckets bounds how many empty bins BuildDistribution creates
// between the extremes. Wider spreads only get bins for observed values.
const MaxSeededBuckets = 1000

// BinWidth picks the histogram bin width for a P&L range: coarser bins as the
// range grows so the chart stays readable.
func BinWidth(min, max decimal.Decimal) int64 {
	spread := max.Sub(min)
	switch {
	case spread.GreaterThan(decimal.NewFromInt(1000)):
		return 100
	case spread.GreaterThan(decimal.NewFromInt(500)):
		return 50
	default:
		return 25
	}
}

// BuildDistribution buckets trade P&L (missing P&L counts as zero) into
// floor-aligned bins covering the observed range, sorted by start. Empty bins
// are filled in only while the range spans at most MaxSeededBuckets bins.
func BuildDistribution(trades []journal.TradeRecord) []DistributionBucket {
	if len(trades) == 0 {
		return []DistributionBucket{}
	}

	lo, hi := trades[0].PnL(), trades[0].PnL()
	for _, t := range trades[1:] {
		pl := t.PnL()
		lo = decimal.Min(lo, pl)
		hi = decimal.Max(hi, pl)
	}

	width := decimal.NewFromInt(BinWidth(lo, hi))
	buckets := make(map[string]*DistributionBucket)
	bucketFor := func(start decimal.Decimal) *DistributionBucket {
		key := start.String()
		b, ok := buckets[key]
		if !ok {
			b = &DistributionBucket{
				Label: fmt.Sprintf("%s to %s", start, start.Add(width)),
				Start: start,
			}
			buckets[key] = b
		}
		return b
	}

	first := floorTo(lo, width)
	if hi.Sub(first).Div(width).LessThan(decimal.NewFromInt(MaxSeededBuckets)) {
		for start := first; start.LessThanOrEqual(hi); start = start.Add(width) {
			bucketFor(start)
		}
	}
	for _, t := range trades {
		bucketFor(floorTo(t.PnL(), width)).Count++
	}

	out := make([]DistributionBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.LessThan(out[j].Start)
	})
	return out
}

func floorTo(v, width decimal.Decimal) decimal.Decimal {
	return v.Div(width).Floor().Mul(width)
}
