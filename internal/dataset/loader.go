package dataset

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

// Column names of the sales log.
const (
	ColOrderID     = "Order ID"
	ColOrderDate   = "Order Date"
	ColRegion      = "Region"
	ColCategory    = "Category"
	ColSubCategory = "Sub-Category"
	ColSegment     = "Segment"
	ColSales       = "Sales"
	ColProfit      = "Profit"
	ColDiscount    = "Discount"
	ColState       = "State"
)

// Column names of the customer clustering result.
const (
	ColCustomerName = "Customer Name"
	ColTotalSales   = "Total Sales"
	ColTotalProfit  = "Total Profit"
	ColPCA1         = "PCA1"
	ColPCA2         = "PCA2"
	ColCluster      = "Cluster"
)

// Reasons a row is excluded at load time.
const (
	DropMalformed = "malformed"
	DropOrderDate = "order_date"
	DropSales     = "sales"
	DropProfit    = "profit"
	DropDiscount  = "discount"
	DropNumeric   = "numeric"
)

var salesColumns = []string{
	ColOrderID, ColOrderDate, ColRegion, ColCategory, ColSubCategory,
	ColSegment, ColSales, ColProfit, ColDiscount, ColState,
}

var customerColumns = []string{
	ColCustomerName, ColTotalSales, ColTotalProfit, ColPCA1, ColPCA2, ColCluster,
}

// orderDateLayouts are tried in order; the first that parses wins.
var orderDateLayouts = []string{
	time.DateOnly,
	"1/2/2006",
	"2006/01/02",
	time.DateTime,
	time.RFC3339,
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"02-01-2006",
	"Jan 2, 2006",
	"2-Jan-2006",
	"2-Jan-06",
}

// LoadStats summarises one dataset load.
type LoadStats struct {
	Source   string         `json:"source"`
	Read     int            `json:"read"`
	Loaded   int            `json:"loaded"`
	Dropped  map[string]int `json:"dropped"`
	Duration time.Duration  `json:"duration"`
}

func newStats(source string) LoadStats {
	return LoadStats{Source: source, Dropped: make(map[string]int)}
}

func (s *LoadStats) drop(reason string) {
	s.Dropped[reason]++
}

// DroppedTotal is the number of rows read but not loaded.
func (s LoadStats) DroppedTotal() int {
	return s.Read - s.Loaded
}

// ParseOrderDate parses an Order Date cell in any of the accepted layouts.
func ParseOrderDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return wallClockUTC(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

// wallClockUTC keeps the date and time as written and drops the offset, so a
// timestamp never moves to a neighbouring calendar day.
func wallClockUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return time.Date(y, m, d, hh, mm, ss, t.Nanosecond(), time.UTC)
}

// LoadSales reads the sales log at path.
func LoadSales(ctx context.Context, path string) ([]models.SalesRecord, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newStats(path), errors.DataUnavailable(path, err)
	}
	defer f.Close()
	return ReadSales(ctx, f, path)
}

// ReadSales parses a sales log from r. Rows whose Order Date does not parse are
// dropped, as are rows with non-numeric Sales, Profit or Discount cells.
func ReadSales(ctx context.Context, r io.Reader, source string) ([]models.SalesRecord, LoadStats, error) {
	start := time.Now()
	stats := newStats(source)

	reader, idx, err := openTable(r, source, salesColumns)
	if err != nil {
		return nil, stats, err
	}

	var records []models.SalesRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		stats.Read++
		if err != nil {
			if isRowError(err) {
				stats.drop(DropMalformed)
				continue
			}
			return nil, stats, errors.DataUnavailable(source, err)
		}

		rec, reason := parseSalesRow(row, idx)
		if reason != "" {
			stats.drop(reason)
			continue
		}
		records = append(records, rec)
	}

	stats.Loaded = len(records)
	stats.Duration = time.Since(start)
	return records, stats, nil
}

func parseSalesRow(row []string, idx map[string]int) (models.SalesRecord, string) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := ParseOrderDate(cell(ColOrderDate))
	if err != nil {
		return models.SalesRecord{}, DropOrderDate
	}

	sales, err := decimal.NewFromString(cell(ColSales))
	if err != nil {
		return models.SalesRecord{}, DropSales
	}

	profit, err := decimal.NewFromString(cell(ColProfit))
	if err != nil {
		return models.SalesRecord{}, DropProfit
	}

	discount, err := strconv.ParseFloat(cell(ColDiscount), 64)
	if err != nil {
		return models.SalesRecord{}, DropDiscount
	}

	return models.SalesRecord{
		OrderID:     cell(ColOrderID),
		OrderDate:   date,
		Region:      cell(ColRegion),
		Category:    cell(ColCategory),
		SubCategory: cell(ColSubCategory),
		Segment:     cell(ColSegment),
		State:       cell(ColState),
		Sales:       sales,
		Profit:      profit,
		Discount:    discount,
	}, ""
}

// LoadCustomerClusters reads the customer clustering result at path.
func LoadCustomerClusters(ctx context.Context, path string) ([]models.CustomerClusterRecord, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newStats(path), errors.DataUnavailable(path, err)
	}
	defer f.Close()
	return ReadCustomerClusters(ctx, f, path)
}

func ReadCustomerClusters(ctx context.Context, r io.Reader, source string) ([]models.CustomerClusterRecord, LoadStats, error) {
	start := time.Now()
	stats := newStats(source)

	reader, idx, err := openTable(r, source, customerColumns)
	if err != nil {
		return nil, stats, err
	}

	var records []models.CustomerClusterRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		stats.Read++
		if err != nil {
			if isRowError(err) {
				stats.drop(DropMalformed)
				continue
			}
			return nil, stats, errors.DataUnavailable(source, err)
		}

		rec, ok := parseCustomerRow(row, idx)
		if !ok {
			stats.drop(DropNumeric)
			continue
		}
		records = append(records, rec)
	}

	stats.Loaded = len(records)
	stats.Duration = time.Since(start)
	return records, stats, nil
}

func parseCustomerRow(row []string, idx map[string]int) (models.CustomerClusterRecord, bool) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	totalSales, err := decimal.NewFromString(cell(ColTotalSales))
	if err != nil {
		return models.CustomerClusterRecord{}, false
	}
	totalProfit, err := decimal.NewFromString(cell(ColTotalProfit))
	if err != nil {
		return models.CustomerClusterRecord{}, false
	}
	pca1, err := strconv.ParseFloat(cell(ColPCA1), 64)
	if err != nil {
		return models.CustomerClusterRecord{}, false
	}
	pca2, err := strconv.ParseFloat(cell(ColPCA2), 64)
	if err != nil {
		return models.CustomerClusterRecord{}, false
	}

	return models.CustomerClusterRecord{
		CustomerName: cell(ColCustomerName),
		TotalSales:   totalSales,
		TotalProfit:  totalProfit,
		PCA1:         pca1,
		PCA2:         pca2,
		Cluster:      cell(ColCluster),
	}, true
}

// openTable reads the header row and maps every required column to its index.
func openTable(r io.Reader, source string, required []string) (*csv.Reader, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("empty file")
		}
		return nil, nil, errors.DataUnavailable(source, fmt.Errorf("read header: %w", err))
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, errors.DataUnavailable(source,
			fmt.Errorf("missing required columns: %s", strings.Join(missing, ", ")))
	}

	return reader, idx, nil
}

func isRowError(err error) bool {
	var parseErr *csv.ParseError
	return stderrors.As(err, &parseErr)
}
