package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logger"
	"github.com/rustyeddy/tradejournal/journal"
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A trading journal with performance analytics",
	Long: `Tradejournal records executed trades and turns them into performance
statistics: win rate, profit factor, expectancy, equity curve, P/L
distribution, weekday and per-strategy breakdowns.

It provides tools for:
  - Logging trades into SQLite, Postgres or a CSV file
  - Importing and exporting CSV trade histories
  - Text, Org-mode and JSON performance reports
  - A JSON API for dashboards`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var (
	cfgFile  string
	logLevel string

	cfg *config.Config
	log *zap.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "tradejournal.yaml", "config file (defaults apply when it does not exist)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}

	l, err := logger.New(c.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	cfg, log = c, l
	log.Debug("config loaded",
		zap.String("path", cfgFile),
		zap.String("journal", cfg.Journal.Type),
	)
	return nil
}

func openStore() (journal.Store, error) {
	j := cfg.Journal
	switch j.Type {
	case "sqlite":
		return journal.NewSQLite(j.DBPath, log)
	case "postgres":
		return journal.NewPostgres(j.DSN, log)
	case "csv":
		return journal.NewCSVStore(j.CSVPath, log)
	default:
		return nil, fmt.Errorf("unknown journal type %q", j.Type)
	}
}

func calendar() (analytics.Calendar, error) {
	return cfg.Report.Calendar()
}

// periodFlag resolves a --period value, falling back to report.period when
// the flag is empty.
func periodFlag(flag string) (analytics.Period, error) {
	if flag == "" {
		return analytics.ParsePeriod(cfg.Report.Period), nil
	}
	if !analytics.ValidPeriod(flag) {
		return "", fmt.Errorf("--period %q: want one of all, week, month, quarter, year", flag)
	}
	return analytics.ParsePeriod(flag), nil
}
