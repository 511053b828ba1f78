package services

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

// DefaultTopStates is how many states the treemap keeps.
const DefaultTopStates = 20

// KeyMetricsOf sums Sales and Profit and counts distinct Order IDs.
func KeyMetricsOf(rows []models.SalesRecord) models.KeyMetrics {
	metrics := models.KeyMetrics{TotalSales: decimal.Zero, TotalProfit: decimal.Zero}
	orders := make(map[string]struct{})
	for _, r := range rows {
		metrics.TotalSales = metrics.TotalSales.Add(r.Sales)
		metrics.TotalProfit = metrics.TotalProfit.Add(r.Profit)
		orders[r.OrderID] = struct{}{}
	}
	metrics.TotalOrders = len(orders)
	return metrics
}

// QuarterOf returns the calendar year and quarter (1-4) of t.
func QuarterOf(t time.Time) (int, int) {
	return t.Year(), (int(t.Month())-1)/3 + 1
}

// QuarterLabel formats a quarter as "2023Q1".
func QuarterLabel(year, q int) string {
	return fmt.Sprintf("%dQ%d", year, q)
}

// QuarterlyTrendOf sums Sales and Profit per calendar quarter of Order Date,
// earliest quarter first.
func QuarterlyTrendOf(rows []models.SalesRecord) []models.QuarterTotals {
	type key struct{ year, q int }
	groups := make(map[key]*models.QuarterTotals)

	for _, r := range rows {
		y, q := QuarterOf(r.OrderDate)
		k := key{y, q}
		g, ok := groups[k]
		if !ok {
			g = &models.QuarterTotals{Quarter: QuarterLabel(y, q), Year: y, Q: q, Sales: decimal.Zero, Profit: decimal.Zero}
			groups[k] = g
		}
		g.Sales = g.Sales.Add(r.Sales)
		g.Profit = g.Profit.Add(r.Profit)
	}

	result := make([]models.QuarterTotals, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	slices.SortFunc(result, func(a, b models.QuarterTotals) int {
		if a.Year != b.Year {
			return a.Year - b.Year
		}
		return a.Q - b.Q
	})
	return result
}

// StateSales is one state's total Sales.
type StateSales struct {
	State string
	Sales decimal.Decimal
}

// StateSalesOf totals Sales per state, in order of first appearance.
func StateSalesOf(rows []models.SalesRecord) []StateSales {
	index := make(map[string]int)
	var totals []StateSales
	for _, r := range rows {
		i, ok := index[r.State]
		if !ok {
			i = len(totals)
			index[r.State] = i
			totals = append(totals, StateSales{State: r.State, Sales: decimal.Zero})
		}
		totals[i].Sales = totals[i].Sales.Add(r.Sales)
	}
	return totals
}

// TopStates returns the n states with the most Sales, highest first. Ties keep
// first-appearance order.
func TopStates(rows []models.SalesRecord, n int) []StateSales {
	totals := StateSalesOf(rows)
	slices.SortStableFunc(totals, func(a, b StateSales) int {
		return b.Sales.Cmp(a.Sales)
	})
	if n >= 0 && len(totals) > n {
		totals = totals[:n]
	}
	if totals == nil {
		totals = []StateSales{}
	}
	return totals
}

// TopStateHierarchyOf restricts rows to the top n states and nests them
// State -> Category -> Sub-Category. States are ordered by Sales; categories
// and sub-categories by first appearance.
func TopStateHierarchyOf(rows []models.SalesRecord, n int) []models.TreemapNode {
	top := TopStates(rows, n)
	rank := make(map[string]int, len(top))
	for i, s := range top {
		rank[s.State] = i
	}

	states := make([]models.TreemapNode, len(top))
	for i, s := range top {
		states[i] = models.TreemapNode{ID: nodeID(s.State), Label: s.State, Sales: decimal.Zero, Profit: decimal.Zero}
	}

	for _, r := range rows {
		i, ok := rank[r.State]
		if !ok {
			continue
		}
		state := &states[i]
		category := child(state, r.Category)
		leaf := child(category, r.SubCategory)

		for _, node := range []*models.TreemapNode{state, category, leaf} {
			node.Sales = node.Sales.Add(r.Sales)
			node.Profit = node.Profit.Add(r.Profit)
		}
	}
	return states
}

func child(parent *models.TreemapNode, label string) *models.TreemapNode {
	for i := range parent.Children {
		if parent.Children[i].Label == label {
			return &parent.Children[i]
		}
	}
	parent.Children = append(parent.Children, models.TreemapNode{
		ID:     parent.ID + "/" + nodeID(label),
		Label:  label,
		Sales:  decimal.Zero,
		Profit: decimal.Zero,
	})
	return &parent.Children[len(parent.Children)-1]
}

var idEscaper = strings.NewReplacer("%", "%25", "/", "%2F")

// nodeID escapes a label for use as one segment of a slash-separated node ID.
func nodeID(label string) string {
	return idEscaper.Replace(label)
}

// FlattenTreemap lays the hierarchy out depth-first as parent-linked columns.
func FlattenTreemap(nodes []models.TreemapNode) models.TreemapColumns {
	cols := models.TreemapColumns{
		IDs:     []string{},
		Labels:  []string{},
		Parents: []string{},
		Values:  []float64{},
		Colors:  []float64{},
	}
	var walk func(parent string, nodes []models.TreemapNode)
	walk = func(parent string, nodes []models.TreemapNode) {
		for _, n := range nodes {
			cols.IDs = append(cols.IDs, n.ID)
			cols.Labels = append(cols.Labels, n.Label)
			cols.Parents = append(cols.Parents, parent)
			cols.Values = append(cols.Values, n.Sales.InexactFloat64())
			cols.Colors = append(cols.Colors, n.Profit.InexactFloat64())
			walk(n.ID, n.Children)
		}
	}
	walk("", nodes)
	return cols
}

// DiscountProfitOf plots every row as (Discount, Profit) and fits an OLS trend.
func DiscountProfitOf(rows []models.SalesRecord) models.DiscountProfit {
	points := make([]models.Point, len(rows))
	for i, r := range rows {
		points[i] = models.Point{X: r.Discount, Y: r.Profit.InexactFloat64()}
	}
	return models.DiscountProfit{Points: points, Trend: FitTrend(points)}
}

// FitTrend fits y = slope*x + intercept by ordinary least squares. It returns
// nil when fewer than two points exist or every x is equal.
func FitTrend(points []models.Point) *models.TrendLine {
	n := float64(len(points))
	if len(points) < 2 {
		return nil
	}

	var sumX, sumY float64
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy, syy float64
	for _, p := range points {
		dx, dy := p.X-meanX, p.Y-meanY
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}
	if sxx == 0 {
		return nil
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX
	r2 := 1.0
	if syy > 0 {
		r2 = (sxy * sxy) / (sxx * syy)
	}

	return &models.TrendLine{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		From:      models.Point{X: minX, Y: slope*minX + intercept},
		To:        models.Point{X: maxX, Y: slope*maxX + intercept},
	}
}

// ClusterViewOf groups customers by Cluster label. Groups are ordered
// numerically when every label is a number, lexically otherwise; points keep
// dataset order.
func ClusterViewOf(customers []models.CustomerClusterRecord) []models.ClusterGroup {
	index := make(map[string]int)
	groups := []models.ClusterGroup{}
	for _, c := range customers {
		i, ok := index[c.Cluster]
		if !ok {
			i = len(groups)
			index[c.Cluster] = i
			groups = append(groups, models.ClusterGroup{Cluster: c.Cluster})
		}
		groups[i].Points = append(groups[i].Points, models.ClusterPoint{
			CustomerName: c.CustomerName,
			TotalSales:   c.TotalSales,
			PCA1:         c.PCA1,
			PCA2:         c.PCA2,
		})
	}

	numeric := make(map[string]float64, len(groups))
	for _, g := range groups {
		v, err := strconv.ParseFloat(g.Cluster, 64)
		if err != nil {
			numeric = nil
			break
		}
		numeric[g.Cluster] = v
	}

	slices.SortStableFunc(groups, func(a, b models.ClusterGroup) int {
		if numeric != nil {
			switch {
			case numeric[a.Cluster] < numeric[b.Cluster]:
				return -1
			case numeric[a.Cluster] > numeric[b.Cluster]:
				return 1
			}
			return 0
		}
		switch {
		case a.Cluster < b.Cluster:
			return -1
		case a.Cluster > b.Cluster:
			return 1
		}
		return 0
	})
	return groups
}

// CustomerTableOf lists customers by Total Sales, highest first. Ties keep dataset order.
func CustomerTableOf(customers []models.CustomerClusterRecord) []models.CustomerRow {
	rows := make([]models.CustomerRow, len(customers))
	for i, c := range customers {
		rows[i] = models.CustomerRow{
			CustomerName: c.CustomerName,
			TotalSales:   c.TotalSales,
			TotalProfit:  c.TotalProfit,
			Cluster:      c.Cluster,
		}
	}
	slices.SortStableFunc(rows, func(a, b models.CustomerRow) int {
		return b.TotalSales.Cmp(a.TotalSales)
	})
	return rows
}
