package dataset

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"sales-dashboard/internal/models"
)

// Snapshot is the immutable pair of datasets loaded at startup. Every
// filtering and aggregation call reads from it; none writes to it.
type Snapshot struct {
	sales         []models.SalesRecord
	customers     []models.CustomerClusterRecord
	options       models.FilterOptions
	salesStats    LoadStats
	customerStats LoadStats
	loadedAt      time.Time
}

// NewSnapshot copies both datasets and derives the filter options.
func NewSnapshot(sales []models.SalesRecord, customers []models.CustomerClusterRecord) *Snapshot {
	s := &Snapshot{
		sales:     slices.Clone(sales),
		customers: slices.Clone(customers),
		loadedAt:  time.Now(),
	}
	s.salesStats = LoadStats{Read: len(sales), Loaded: len(sales), Dropped: map[string]int{}}
	s.customerStats = LoadStats{Read: len(customers), Loaded: len(customers), Dropped: map[string]int{}}
	s.options = deriveOptions(s.sales)
	return s
}

// Load reads both datasets concurrently. Either failing aborts the load.
func Load(ctx context.Context, salesPath, customersPath string, logger *slog.Logger) (*Snapshot, error) {
	var (
		sales         []models.SalesRecord
		customers     []models.CustomerClusterRecord
		salesStats    LoadStats
		customerStats LoadStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, salesStats, err = LoadSales(gctx, salesPath)
		return err
	})
	g.Go(func() error {
		var err error
		customers, customerStats, err = LoadCustomerClusters(gctx, customersPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logStats(logger, "sales", salesStats)
	logStats(logger, "customers", customerStats)

	snap := &Snapshot{
		sales:         slices.Clip(sales),
		customers:     slices.Clip(customers),
		options:       deriveOptions(sales),
		salesStats:    salesStats,
		customerStats: customerStats,
		loadedAt:      time.Now(),
	}
	return snap, nil
}

func logStats(logger *slog.Logger, dataset string, stats LoadStats) {
	logger.Info("dataset loaded",
		"dataset", dataset,
		"source", stats.Source,
		"rows_read", stats.Read,
		"rows_loaded", stats.Loaded,
		"duration", stats.Duration,
	)
	if n := stats.DroppedTotal(); n > 0 {
		logger.Warn("rows excluded at load",
			"dataset", dataset,
			"source", stats.Source,
			"excluded", n,
			"reasons", stats.Dropped,
		)
	}
}

// Sales returns the sales log. The slice is shared and must not be modified.
func (s *Snapshot) Sales() []models.SalesRecord {
	return s.sales
}

// Customers returns the customer clustering rows. The slice is shared and must not be modified.
func (s *Snapshot) Customers() []models.CustomerClusterRecord {
	return s.customers
}

func (s *Snapshot) Options() models.FilterOptions {
	o := s.options
	o.Regions = slices.Clone(o.Regions)
	o.Categories = slices.Clone(o.Categories)
	o.Segments = slices.Clone(o.Segments)
	return o
}

// DefaultSelection selects every region, category and segment over the full date range.
func (s *Snapshot) DefaultSelection() models.FilterSelection {
	return s.options.Selection()
}

func (s *Snapshot) SalesStats() LoadStats    { return s.salesStats }
func (s *Snapshot) CustomerStats() LoadStats { return s.customerStats }
func (s *Snapshot) LoadedAt() time.Time      { return s.loadedAt }

// deriveOptions collects distinct dimension values in first-appearance order
// and the calendar-date bounds of the log.
func deriveOptions(sales []models.SalesRecord) models.FilterOptions {
	var opts models.FilterOptions
	seenRegion := make(map[string]bool)
	seenCategory := make(map[string]bool)
	seenSegment := make(map[string]bool)

	for i, rec := range sales {
		if !seenRegion[rec.Region] {
			seenRegion[rec.Region] = true
			opts.Regions = append(opts.Regions, rec.Region)
		}
		if !seenCategory[rec.Category] {
			seenCategory[rec.Category] = true
			opts.Categories = append(opts.Categories, rec.Category)
		}
		if !seenSegment[rec.Segment] {
			seenSegment[rec.Segment] = true
			opts.Segments = append(opts.Segments, rec.Segment)
		}

		d := models.DateOf(rec.OrderDate)
		if i == 0 || d.Before(opts.MinDate) {
			opts.MinDate = d
		}
		if i == 0 || d.After(opts.MaxDate) {
			opts.MaxDate = d
		}
	}
	return opts
}
