package services

import (
	"context"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/filter"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

// Recorder receives one observation per recomputation.
type Recorder interface {
	ObserveRecompute(rows int, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRecompute(int, time.Duration) {}

// Analytics answers FilterSelections against one immutable Snapshot. Each
// call filters and aggregates synchronously; nothing is cached between calls.
type Analytics struct {
	snapshot     *dataset.Snapshot
	topStates    int
	logger       *slog.Logger
	recorder     Recorder
	computations atomic.Int64
}

type Option func(*Analytics)

func WithTopStates(n int) Option {
	return func(a *Analytics) {
		if n > 0 {
			a.topStates = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analytics) { a.logger = logger }
}

func WithRecorder(r Recorder) Option {
	return func(a *Analytics) { a.recorder = r }
}

func NewAnalytics(snapshot *dataset.Snapshot, opts ...Option) *Analytics {
	a := &Analytics{
		snapshot:  snapshot,
		topStates: DefaultTopStates,
		logger:    slog.Default(),
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analytics) Snapshot() *dataset.Snapshot {
	return a.snapshot
}

func (a *Analytics) TopStatesLimit() int {
	return a.topStates
}

func (a *Analytics) Options() models.FilterOptions {
	return a.snapshot.Options()
}

func (a *Analytics) DefaultSelection() models.FilterSelection {
	return a.snapshot.DefaultSelection()
}

// Filter returns the sales rows matching sel.
func (a *Analytics) Filter(ctx context.Context, sel models.FilterSelection) []models.SalesRecord {
	_, span := observability.StartSpan(ctx, "filter")
	defer span.FinishAndLog(a.logger)

	rows := filter.Apply(a.snapshot.Sales(), sel)
	span.SetTag("rows", strconv.Itoa(len(rows)))
	return rows
}

// Compute runs the whole pipeline for sel: filter, then every view.
// The cluster view and customer table ignore sel.
func (a *Analytics) Compute(ctx context.Context, sel models.FilterSelection) *models.Dashboard {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "compute")
	defer span.FinishAndLog(a.logger)

	rows := a.Filter(ctx, sel)

	_, agg := observability.StartSpan(ctx, "aggregate")
	dash := &models.Dashboard{
		Selection:      sel,
		FilteredRows:   len(rows),
		Metrics:        KeyMetricsOf(rows),
		Quarterly:      QuarterlyTrendOf(rows),
		Treemap:        TopStateHierarchyOf(rows, a.topStates),
		DiscountProfit: DiscountProfitOf(rows),
		Clusters:       ClusterViewOf(a.snapshot.Customers()),
		Customers:      CustomerTableOf(a.snapshot.Customers()),
	}
	agg.FinishAndLog(a.logger)

	elapsed := time.Since(start)
	a.computations.Add(1)
	a.recorder.ObserveRecompute(len(rows), elapsed)
	a.logger.Debug("dashboard recomputed",
		"filtered_rows", len(rows),
		"duration", elapsed,
		"request_id", observability.GetRequestID(ctx),
	)
	return dash
}

func (a *Analytics) Stats() map[string]any {
	sales := a.snapshot.SalesStats()
	customers := a.snapshot.CustomerStats()
	opts := a.snapshot.Options()

	return map[string]any{
		"sales_rows":         sales.Loaded,
		"sales_excluded":     sales.DroppedTotal(),
		"sales_excluded_by":  sales.Dropped,
		"customer_rows":      customers.Loaded,
		"customers_excluded": customers.DroppedTotal(),
		"regions":            len(opts.Regions),
		"categories":         len(opts.Categories),
		"segments":           len(opts.Segments),
		"min_order_date":     opts.MinDate.Format(time.DateOnly),
		"max_order_date":     opts.MaxDate.Format(time.DateOnly),
		"loaded_at":          a.snapshot.LoadedAt(),
		"computations":       a.computations.Load(),
	}
}
