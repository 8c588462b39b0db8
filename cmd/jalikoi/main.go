// Package main is the entry point for the Jalikoi analytics dashboard.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jalikoi/analytics-tui/internal/app"
	"github.com/jalikoi/analytics-tui/internal/config"
	"github.com/jalikoi/analytics-tui/internal/logger"
	"github.com/jalikoi/analytics-tui/internal/metrics"
	"github.com/jalikoi/analytics-tui/internal/services"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/anomalies"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/assistant"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/charts"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/customers"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/info"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/overview"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/predictions"
	"github.com/jalikoi/analytics-tui/internal/ui/tabs/segments"
	"github.com/jalikoi/analytics-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logCloser, err := logger.Init(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	logger.Info("starting", "version", version.Info(), "api", cfg.APIBaseURL)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	if cfg.MetricsAddr != "" {
		srv := metrics.NewServer(cfg.MetricsAddr, prometheus.DefaultGatherer)
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("metrics server shutdown", "error", err)
			}
		}()
	}

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager, cfg.DefaultPeriod)

	// Tab order matches app.TabID.
	state := model.GetState()
	model.SetTabs([]app.Tab{
		overview.New(state),
		customers.New(state),
		charts.New(state),
		predictions.New(svcManager),
		segments.New(svcManager),
		anomalies.New(svcManager),
		assistant.New(svcManager),
		info.New(state, cfg, svcManager),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	logger.Info("exiting")
	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Jalikoi Analytics - terminal dashboard for the fuel-retail analytics API

Usage:
  jalikoi [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-8             Switch tabs
  Tab/Shift+Tab   Navigate between tabs
  y/w/m/a         Yesterday, last week, last month, all time
  u               Custom date range
  x               Toggle period comparison
  Enter/f         Apply filters (Enter opens a segment on the Segments tab)
  r               Retry or refresh the current tab
  Esc             Dismiss an error or close an overlay
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  API_BASE_URL           Analytics API root (default: http://localhost:8000)
  API_TOKEN              Bearer token (overrides the session file)
  SESSION_PATH           Session file written by the login flow
  DATABASE_PATH          SQLite API call audit database
  LOG_PATH, LOG_LEVEL    Log file and level (debug, info, warn, error)
  METRICS_ADDR           Serve Prometheus metrics on this address
  REQUEST_TIMEOUT        Per-request timeout (default: 30s)
  AUDIT_RETENTION        Drop audit rows older than this (default: 720h)
  DEFAULT_PERIOD         yesterday, week, month or all
  CONFIG_FILE            YAML file with panel request limits
  CHURN_MIN_PROBABILITY, CHURN_LIMIT, FORECAST_TOP_N, ANOMALY_LIMIT

Configuration:
  .env files are read from the current directory, ~/.config/jalikoi/.env
  and the parent directory, in that order.`)
}
