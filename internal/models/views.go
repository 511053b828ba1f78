package models

import "github.com/shopspring/decimal"

type KeyMetrics struct {
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	TotalOrders int             `json:"total_orders"`
}

type QuarterTotals struct {
	Quarter string          `json:"quarter"`
	Year    int             `json:"year"`
	Q       int             `json:"q"`
	Sales   decimal.Decimal `json:"sales"`
	Profit  decimal.Decimal `json:"profit"`
}

// TreemapNode is one rectangle of the State -> Category -> Sub-Category hierarchy.
// Sales sizes the node; Profit drives its colour.
type TreemapNode struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Sales    decimal.Decimal `json:"sales"`
	Profit   decimal.Decimal `json:"profit"`
	Children []TreemapNode   `json:"children,omitempty"`
}

// TreemapColumns is the flattened, parent-linked form of a treemap.
type TreemapColumns struct {
	IDs     []string  `json:"ids"`
	Labels  []string  `json:"labels"`
	Parents []string  `json:"parents"`
	Values  []float64 `json:"values"`
	Colors  []float64 `json:"colors"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TrendLine is an ordinary least squares fit y = Slope*x + Intercept.
type TrendLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	From      Point   `json:"from"`
	To        Point   `json:"to"`
}

type DiscountProfit struct {
	Points []Point    `json:"points"`
	Trend  *TrendLine `json:"trend,omitempty"`
}

type ClusterPoint struct {
	CustomerName string          `json:"customer_name"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	PCA1         float64         `json:"pca1"`
	PCA2         float64         `json:"pca2"`
}

type ClusterGroup struct {
	Cluster string         `json:"cluster"`
	Points  []ClusterPoint `json:"points"`
}

type CustomerRow struct {
	CustomerName string          `json:"customer_name"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	Cluster      string          `json:"cluster"`
}

// Dashboard is every view computed for a single FilterSelection.
type Dashboard struct {
	Selection      FilterSelection `json:"selection"`
	FilteredRows   int             `json:"filtered_rows"`
	Metrics        KeyMetrics      `json:"metrics"`
	Quarterly      []QuarterTotals `json:"quarterly"`
	Treemap        []TreemapNode   `json:"treemap"`
	DiscountProfit DiscountProfit  `json:"discount_profit"`
	Clusters       []ClusterGroup  `json:"clusters"`
	Customers      []CustomerRow   `json:"customers"`
}
