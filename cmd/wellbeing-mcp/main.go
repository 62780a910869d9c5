// wellbeing-mcp serves the scoring and report tools over the MCP stdio transport.
package main

import (
	"fmt"
	"os"

	"wellbeing/internal/app"
	"wellbeing/internal/config"
	"wellbeing/internal/logging"
	"wellbeing/internal/mcptools"
	"wellbeing/internal/metrics"
	"wellbeing/internal/report"

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Version is set at build time
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// stdout carries protocol traffic
	log, err := logging.NewStderr(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	cat, err := app.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	gen := report.NewOrchestrator(cfg.AI, nil,
		report.WithLogger(log.Named("report")),
		report.WithMetrics(metrics.New(prometheus.NewRegistry())),
	)

	s := mcptools.NewServer("wellbeing", Version, cat, gen)
	log.Info("mcp server ready", zap.String("catalog", cat.Version()), zap.Bool("report_enabled", cfg.AI.IsEnabled()))
	return server.ServeStdio(s)
}
