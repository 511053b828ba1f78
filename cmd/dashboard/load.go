package main

import (
	"context"
	"log/slog"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/dataset"
)

// loadSnapshot reads both datasets within the configured load timeout.
func loadSnapshot(ctx context.Context, data config.DataConfig, logger *slog.Logger) (*dataset.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, data.LoadTimeout)
	defer cancel()
	return dataset.Load(ctx, data.SalesCSV, data.CustomersCSV, logger)
}
