package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const rule = "--------------------------------------------------"

// PrintText writes a plain-text report.
func PrintText(w io.Writer, r Report) {
	s := r.Summary

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " Trading Performance: %s\n", r.Period)
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Range:         %s\n", rangeText(r))
	fmt.Fprintf(w, "Timezone:      %s\n", r.Timezone)
	fmt.Fprintf(w, "Generated:     %s\n", r.Generated.Format(time.RFC3339))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Trades:        %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.ProfitableTrades)
	fmt.Fprintf(w, "Losses:        %d\n", s.LosingTrades)
	fmt.Fprintf(w, "Break-even:    %d\n", s.BreakEvenTrades)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate)
	fmt.Fprintf(w, "Profit Factor: %s\n", s.ProfitFactor)
	fmt.Fprintf(w, "Best Streak:   %d wins\n", s.MaxConsecutiveWins)
	fmt.Fprintf(w, "Worst Streak:  %d losses\n", s.MaxConsecutiveLosses)
	fmt.Fprintf(w, "Avg Hold:      %.1f min (%d closed)\n", s.AvgTradeTimeMinutes, s.ClosedTrades)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Profit and Loss")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Net P/L:       %s\n", s.NetPnL.StringFixed(2))
	fmt.Fprintf(w, "Gross Profit:  %s\n", s.GrossProfit.StringFixed(2))
	fmt.Fprintf(w, "Gross Loss:    %s\n", s.GrossLoss.StringFixed(2))
	fmt.Fprintf(w, "Avg Win:       %s\n", s.AvgWin.StringFixed(2))
	fmt.Fprintf(w, "Avg Loss:      %s\n", s.AvgLoss.StringFixed(2))
	fmt.Fprintf(w, "Largest Win:   %s\n", s.LargestWin.StringFixed(2))
	fmt.Fprintf(w, "Largest Loss:  %s\n", s.LargestLoss.StringFixed(2))
	fmt.Fprintf(w, "Expectancy:    %s\n", s.ExpectedValue.StringFixed(2))
	fmt.Fprintf(w, "Daily P/L:     %s (%d days)\n", s.NetDailyPnL.StringFixed(2), s.TradingDays)
	fmt.Fprintf(w, "Max Drawdown:  %s\n", s.MaxDrawdown.StringFixed(2))

	if len(r.Weekdays) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "By Weekday")
		fmt.Fprintln(w, rule)
		for _, d := range r.Weekdays {
			fmt.Fprintf(w, "%-10s %5d %12s\n", d.Day, d.Count, d.PnL.StringFixed(2))
		}
	}

	if len(r.Strategies) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Strategies")
		fmt.Fprintln(w, rule)
		for _, st := range r.Strategies {
			fmt.Fprintf(w, "%-20s %5d %7.2f%% %12s\n", st.Name, st.Trades, st.WinRate, st.PnL.StringFixed(2))
		}
	}

	if len(r.Distribution) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "P/L Distribution")
		fmt.Fprintln(w, rule)
		for _, b := range r.Distribution {
			fmt.Fprintf(w, "%-22s %5d %s\n", b.Label, b.Count, strings.Repeat("#", b.Count))
		}
	}

	fmt.Fprintln(w)
}

func rangeText(r Report) string {
	if r.Start == nil || r.End == nil {
		return "all trades"
	}
	return r.Start.Format("2006-01-02") + " .. " + r.End.Format("2006-01-02")
}
