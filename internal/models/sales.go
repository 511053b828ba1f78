package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord is one line item of the sales log. Several records may share an OrderID.
type SalesRecord struct {
	OrderID     string
	OrderDate   time.Time
	Region      string
	Category    string
	SubCategory string
	Segment     string
	State       string
	Sales       decimal.Decimal
	Profit      decimal.Decimal
	Discount    float64
}

// CustomerClusterRecord is one row of the precomputed customer segmentation.
type CustomerClusterRecord struct {
	CustomerName string
	TotalSales   decimal.Decimal
	TotalProfit  decimal.Decimal
	PCA1         float64
	PCA2         float64
	Cluster      string
}

// FilterSelection holds the user's current constraints on the sales log.
// A nil or empty slice selects nothing for that dimension.
type FilterSelection struct {
	Regions    []string  `json:"regions"`
	Categories []string  `json:"categories"`
	Segments   []string  `json:"segments"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// FilterOptions describes the values a FilterSelection may draw from.
type FilterOptions struct {
	Regions    []string  `json:"regions"`
	Categories []string  `json:"categories"`
	Segments   []string  `json:"segments"`
	MinDate    time.Time `json:"min_date"`
	MaxDate    time.Time `json:"max_date"`
}

// Selection returns the selection that matches every record: all values, full date range.
func (o FilterOptions) Selection() FilterSelection {
	return FilterSelection{
		Regions:    append([]string(nil), o.Regions...),
		Categories: append([]string(nil), o.Categories...),
		Segments:   append([]string(nil), o.Segments...),
		Start:      o.MinDate,
		End:        o.MaxDate,
	}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
