// Command vnlookup serves the Vietnamese lottery and weather lookup API.
//
// Usage:
//
//	vnlookup lambda     Run as an AWS Lambda function (default)
//	vnlookup serve      Serve over HTTP with /metrics and /healthz
//	vnlookup version    Show version
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/prognoshealth/vnlookup/api"
	"github.com/prognoshealth/vnlookup/config"
	"github.com/prognoshealth/vnlookup/localtime"
	"github.com/prognoshealth/vnlookup/lottery"
	"github.com/prognoshealth/vnlookup/observability"
	"github.com/prognoshealth/vnlookup/weather"
)

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	lambdaCmd := newLambdaCmd()

	rootCmd := &cobra.Command{
		Use:   "vnlookup",
		Short: "Vietnamese lottery results and weather as a JSON API",
		Long: `vnlookup answers three routes:

    /home (or /docs)            API description
    /xoso?dai=mb                latest special prize for a region
    /thoitiet?dia_diem=Ha Noi   current weather and a short forecast

Without a subcommand it runs as a lambda function.`,
		SilenceUsage: true,
		RunE:         lambdaCmd.RunE,
	}

	rootCmd.AddCommand(
		lambdaCmd,
		newServeCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// app is everything a subcommand needs once configuration is loaded.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	handler *api.Handler
}

func newApp(ctx context.Context, reg prometheus.Registerer) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.Environment)
	metrics := observability.NewMetrics(reg)
	stamper := localtime.NewStamper(nil)
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	handler, err := api.New(api.Options{
		Mount:     cfg.Mount(),
		InfoRoute: cfg.InfoRoute,
		Lottery:   lottery.NewClient(cfg.LotteryBaseURL, httpClient, stamper, metrics),
		Weather:   weather.NewClient(cfg.WeatherBaseURL, httpClient, stamper, metrics),
		Stamper:   stamper,
		Metrics:   metrics,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("configured",
		"mount", cfg.Mount(),
		"info_route", cfg.InfoRoute,
		"http_timeout", cfg.HTTPTimeout,
	)

	return &app{cfg: cfg, logger: logger, handler: handler}, nil
}
