package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/id"
	"github.com/rustyeddy/tradejournal/journal"
)

var importCmd = &cobra.Command{
	Use:   "import <trades.csv>",
	Short: "Import trades from a CSV file",
	Long: `Read trades from a CSV file with a header row and record them in the
journal. Columns are matched by name; only open_time is required.
Rows without a trade_id get a new ULID. Rows whose trade_id is already
in the journal are skipped. Use "-" to read standard input.

Example:
  tradejournal import broker-history.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export <trades.csv>",
	Short: "Export every trade to a CSV file",
	Long: `Write the whole journal as CSV, ordered by open time. Use "-" to
write to standard output.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		fh, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open csv: %w", err)
		}
		defer fh.Close()
		r = fh
	}

	trades, issues, err := journal.ReadTradesCSV(r)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}
	for _, is := range issues {
		log.Warn("ignoring malformed value",
			zap.Int("row", is.Row),
			zap.String("field", is.Field),
			zap.String("value", is.Value),
		)
	}

	j, err := openStore()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	var imported, skipped int
	for _, t := range trades {
		if t.TradeID == "" {
			if t.TradeID, err = id.NewAt(t.OpenTime); err != nil {
				return fmt.Errorf("assign trade id: %w", err)
			}
		} else if _, err := j.GetTrade(cmd.Context(), t.TradeID); err == nil {
			skipped++
			log.Debug("trade already in journal", zap.String("trade_id", t.TradeID))
			continue
		}

		if err := j.RecordTrade(cmd.Context(), t); err != nil {
			return fmt.Errorf("record trade %s: %w", t.TradeID, err)
		}
		imported++
	}

	log.Info("import finished",
		zap.String("source", args[0]),
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
		zap.Int("issues", len(issues)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades (%d already present, %d values dropped)\n",
		imported, skipped, len(issues))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	j, err := openStore()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	trades, err := j.ListTrades(cmd.Context())
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	if args[0] == "-" {
		return journal.WriteTradesCSV(cmd.OutOrStdout(), trades)
	}

	fh, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := journal.WriteTradesCSV(fh, trades); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trades to %s\n", len(trades), args[0])
	return nil
}
