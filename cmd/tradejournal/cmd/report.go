package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print performance analytics for a period",
	Long: `Compute the performance report for the trades opened in a period.

Periods: all, week, month, quarter, year (calendar period containing today).
Formats: text, org, json.

Examples:
  tradejournal report
  tradejournal report --period month --format org --out 2024-03.org
  tradejournal report --period year --format json`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var (
	reportPeriod string
	reportFormat string
	reportTop    int
	reportOut    string
	reportAsOf   string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportPeriod, "period", "p", "", "all, week, month, quarter or year (default: report.period)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", report.FormatText, "text, org or json")
	reportCmd.Flags().IntVar(&reportTop, "top", -1, "strategies to show, 0 for all (default: report.top_strategies)")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "write the report to a file instead of stdout")
	reportCmd.Flags().StringVar(&reportAsOf, "as-of", "", "reference date for the period (default: now)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cal, err := calendar()
	if err != nil {
		return err
	}

	period, err := periodFlag(reportPeriod)
	if err != nil {
		return err
	}

	opts := report.Options{
		Period:        period,
		Now:           time.Now(),
		Calendar:      cal,
		TopStrategies: cfg.Report.TopStrategies,
	}
	if reportTop >= 0 {
		opts.TopStrategies = reportTop
	}
	if reportAsOf != "" {
		start, _, err := dayBounds(cal, reportAsOf)
		if err != nil {
			return fmt.Errorf("--as-of: %w", err)
		}
		opts.Now = start.Add(12 * time.Hour)
	}

	j, err := openStore()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	trades, err := j.ListTrades(cmd.Context())
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	r := report.Build(trades, opts)

	var w io.Writer = cmd.OutOrStdout()
	if reportOut != "" {
		fh, err := os.Create(reportOut)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer fh.Close()
		w = fh
	}

	return report.Write(w, r, reportFormat)
}
