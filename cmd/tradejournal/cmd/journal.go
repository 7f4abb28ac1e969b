package cmd

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/id"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/report"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Record and query journal trades",
	Long: `Record trades and display journal records.

Subcommands:
  add     - Record a trade
  trade   - Get details of a specific trade by ID
  today   - List trades opened today
  day     - List trades opened on a specific day
  list    - List trades in a reporting period
  delete  - Remove a trade

Examples:
  tradejournal journal add --instrument EUR_USD --open "2024-03-11 09:30" --pl 42.50
  tradejournal journal trade 01HS3K8ZQ4X7Y2M9N1B5C6D7E8
  tradejournal journal today
  tradejournal journal day 2024-01-15
  tradejournal journal list --period month`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a trade",
	Args:  cobra.NoArgs,
	RunE:  runJournalAdd,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades opened today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades opened on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades in a reporting period",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Remove a trade from the journal",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

var (
	addID         string
	addInstrument string
	addUnits      float64
	addEntry      float64
	addExit       float64
	addOpen       string
	addClose      string
	addPL         string
	addStrategy   string
	addReason     string
	addNotes      string

	listPeriod string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalDeleteCmd)

	f := journalAddCmd.Flags()
	f.StringVar(&addID, "id", "", "trade ID (default: new ULID)")
	f.StringVarP(&addInstrument, "instrument", "i", "", "instrument, e.g. EUR_USD (required)")
	f.Float64VarP(&addUnits, "units", "u", 0, "position size")
	f.Float64Var(&addEntry, "entry", 0, "entry price")
	f.Float64Var(&addExit, "exit", 0, "exit price")
	f.StringVar(&addOpen, "open", "", "entry time (default: now)")
	f.StringVar(&addClose, "close", "", "exit time; leave empty for an open trade")
	f.StringVar(&addPL, "pl", "", "realized P/L; leave empty when unknown")
	f.StringVarP(&addStrategy, "strategy", "s", "", "strategy or playbook name")
	f.StringVar(&addReason, "reason", "", "why the trade was taken")
	f.StringVar(&addNotes, "notes", "", "review notes")
	_ = journalAddCmd.MarkFlagRequired("instrument")

	journalListCmd.Flags().StringVarP(&listPeriod, "period", "p", "", "all, week, month, quarter or year (default: report.period)")
}

func runJournalAdd(cmd *cobra.Command, args []string) error {
	cal, err := calendar()
	if err != nil {
		return err
	}

	rec := journal.TradeRecord{
		TradeID:    addID,
		Instrument: addInstrument,
		Units:      addUnits,
		EntryPrice: addEntry,
		ExitPrice:  addExit,
		Strategy:   addStrategy,
		Reason:     addReason,
		Notes:      addNotes,
		OpenTime:   time.Now(),
	}
	if addOpen != "" {
		if rec.OpenTime, err = journal.ParseTimeIn(addOpen, cal.Location); err != nil {
			return fmt.Errorf("--open: %w", err)
		}
	}
	if addClose != "" {
		ct, err := journal.ParseTimeIn(addClose, cal.Location)
		if err != nil {
			return fmt.Errorf("--close: %w", err)
		}
		rec.CloseTime = &ct
	}
	if addPL != "" {
		pl, err := decimal.NewFromString(addPL)
		if err != nil {
			return fmt.Errorf("--pl: %w", err)
		}
		rec.RealizedPL = &pl
	}
	if rec.TradeID == "" {
		if rec.TradeID, err = id.NewAt(rec.OpenTime); err != nil {
			return fmt.Errorf("--open: %w", err)
		}
	}

	j, err := openStore()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	if err := j.RecordTrade(cmd.Context(), rec); err != nil {
		return fmt.Errorf("record trade: %w", err)
	}

	log.Info("trade recorded", zap.String("trade_id", rec.TradeID), zap.String("outcome", rec.Outcome().String()))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %s (%s, %s)\n", rec.TradeID, rec.Instrument, rec.Outcome())
	return nil
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, err := openStore()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	rec, err := j.GetTrade(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	cal, err := calendar()
	if err != nil {
		return err
	}
	return printDay(cmd, cal, cal.In(time.Now()).Format("2006-01-02"))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	cal, err := calendar()
	if err != nil {
		return err
	}
	return printDay(cmd, cal, args[0])
}

func printDay(cmd *cobra.Command, cal analytics.Calendar, day string) error {
	start, end, err := dayBounds(cal, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	j, err := openStore()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	recs, err := j.ListTradesOpenedBetween(cmd.Context(), start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	cal, err := calendar()
	if err != nil {
		return err
	}
	period, err := periodFlag(listPeriod)
	if err != nil {
		return err
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
	trades = analytics.SelectPeriod(report.Chronological(trades), period, time.Now(), cal)

	out := cmd.OutOrStdout()
	for _, t := range trades {
		pl := "-"
		if t.RealizedPL != nil {
			pl = t.RealizedPL.StringFixed(2)
		}
		fmt.Fprintf(out, "%-26s %-16s %-10s %-9s %10s  %s\n",
			t.TradeID,
			cal.In(t.OpenTime).Format("2006-01-02 15:04"),
			t.Instrument,
			t.Outcome(),
			pl,
			analytics.StrategyName(t),
		)
	}
	fmt.Fprintf(out, "%d trades\n", len(trades))
	return nil
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	j, err := openStore()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	if err := j.DeleteTrade(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
	return nil
}

// dayBounds returns [midnight, next midnight) of day in the calendar's zone.
func dayBounds(cal analytics.Calendar, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, cal.Loc())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := cal.Date(t)
	return start, start.AddDate(0, 0, 1), nil
}
