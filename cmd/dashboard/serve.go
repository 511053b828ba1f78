package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/subcommands"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/metrics"
	"sales-dashboard/internal/middleware"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/server"
	"sales-dashboard/internal/services"
)

const version = "1.0.0"

type serveCmd struct{}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the interactive sales dashboard over HTTP" }
func (*serveCmd) Usage() string {
	return `dashboard serve

  Loads the sales and customer-cluster CSVs and serves the dashboard.
  Configuration is read from the environment (SERVER_PORT, SALES_CSV,
  CUSTOMERS_CSV, TOP_STATES, METRICS_ENABLED, ...).
`
}

func (*serveCmd) SetFlags(*flag.FlagSet) {}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		return subcommands.ExitFailure
	}
	logger.Info("application stopped gracefully")
	return subcommands.ExitSuccess
}

// newHandler wires the dashboard routes behind the middleware chain.
func newHandler(cfg *config.Config, analytics *services.Analytics, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	var opts []server.Option
	if m != nil {
		opts = append(opts, server.WithMetrics(m))
	}
	srv := server.NewServer(analytics, logger, opts...)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(middleware.NewRateLimiter(cfg.Security), logger),
	)
	return chain(srv)
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting application",
		"version", version,
		"addr", cfg.Address(),
		"sales_csv", cfg.Data.SalesCSV,
		"customers_csv", cfg.Data.CustomersCSV,
	)

	snapshot, err := loadSnapshot(ctx, cfg.Data, logger)
	if err != nil {
		return fmt.Errorf("load datasets: %w", err)
	}

	opts := []services.Option{
		services.WithTopStates(cfg.Data.TopStates),
		services.WithLogger(logger),
	}
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		sales, customers := snapshot.SalesStats(), snapshot.CustomerStats()
		m.SetDataset("sales", sales.Loaded, sales.Dropped)
		m.SetDataset("customers", customers.Loaded, customers.Dropped)
		opts = append(opts, services.WithRecorder(m))
	}
	analytics := services.NewAnalytics(snapshot, opts...)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, analytics, m, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server)
	gracefulServer.RegisterShutdownHook("analytics", func(context.Context) error {
		logger.Info("analytics service stopped", "computations", analytics.Stats()["computations"])
		return nil
	})
	return gracefulServer.ListenAndServe()
}
