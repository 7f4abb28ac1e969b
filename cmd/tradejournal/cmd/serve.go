package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal and its analytics as a JSON API",
	Long: `Start an HTTP server exposing the journal under /api/v1.

Endpoints:
  GET    /api/v1/trades[?period=]
  POST   /api/v1/trades
  GET    /api/v1/trades/:id
  DELETE /api/v1/trades/:id
  GET    /api/v1/analytics/{summary,equity,distribution,weekdays,strategies,report}[?period=]
  GET    /healthz`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default: server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cal, err := calendar()
	if err != nil {
		return err
	}

	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	h := &server.Handler{
		Store:         j,
		Calendar:      cal,
		DefaultPeriod: analytics.Period(cfg.Report.Period),
		TopStrategies: cfg.Report.TopStrategies,
		Logger:        log,
	}
	engine := server.NewEngine(h, log, cfg.Log.Development)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, addr, engine, log)
}
