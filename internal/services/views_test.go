package services

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestKeyMetricsOf_DistinctOrders(t *testing.T) {
	rows := []models.SalesRecord{
		{OrderID: "A", Sales: dec("100"), Profit: dec("20"), Region: "West"},
		{OrderID: "A", Sales: dec("50"), Profit: dec("5"), Region: "West"},
	}

	got := KeyMetricsOf(rows)
	if !got.TotalSales.Equal(dec("150")) {
		t.Errorf("expected total sales 150, got %s", got.TotalSales)
	}
	if !got.TotalProfit.Equal(dec("25")) {
		t.Errorf("expected total profit 25, got %s", got.TotalProfit)
	}
	if got.TotalOrders != 1 {
		t.Errorf("expected 1 distinct order, got %d", got.TotalOrders)
	}
}

func TestKeyMetricsOf_Empty(t *testing.T) {
	got := KeyMetricsOf(nil)
	if !got.TotalSales.IsZero() || !got.TotalProfit.IsZero() || got.TotalOrders != 0 {
		t.Errorf("expected zero metrics, got %+v", got)
	}
}

func TestQuarterlyTrendOf_Chronological(t *testing.T) {
	rows := []models.SalesRecord{
		{OrderDate: day(2023, 5, 20), Sales: dec("10"), Profit: dec("1")},
		{OrderDate: day(2022, 12, 31), Sales: dec("7"), Profit: dec("-2")},
		{OrderDate: day(2023, 2, 10), Sales: dec("100"), Profit: dec("30")},
		{OrderDate: day(2023, 4, 1), Sales: dec("5"), Profit: dec("0.5")},
	}

	got := QuarterlyTrendOf(rows)
	var labels []string
	for _, q := range got {
		labels = append(labels, q.Quarter)
	}
	if diff := cmp.Diff([]string{"2022Q4", "2023Q1", "2023Q2"}, labels); diff != "" {
		t.Errorf("quarter order mismatch (-want +got):\n%s", diff)
	}
	if !got[2].Sales.Equal(dec("15")) || !got[2].Profit.Equal(dec("1.5")) {
		t.Errorf("unexpected 2023Q2 totals %+v", got[2])
	}
}

func TestQuarterlyTrendOf_Example(t *testing.T) {
	rows := []models.SalesRecord{
		{OrderDate: day(2023, 5, 20), Sales: dec("1")},
		{OrderDate: day(2023, 2, 10), Sales: dec("1")},
	}
	got := QuarterlyTrendOf(rows)
	if len(got) != 2 || got[0].Quarter != "2023Q1" || got[1].Quarter != "2023Q2" {
		t.Errorf("expected 2023Q1 then 2023Q2, got %+v", got)
	}
}

func TestQuarterlyTrendOf_Conservation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	rows := make([]models.SalesRecord, 300)
	for i := range rows {
		rows[i] = models.SalesRecord{
			OrderDate: day(2021, 1, 1).AddDate(0, 0, rng.Intn(1000)),
			Sales:     decimal.New(rng.Int63n(100000)-20000, -2),
			Profit:    decimal.New(rng.Int63n(20000)-10000, -2),
		}
	}

	metrics := KeyMetricsOf(rows)
	sales, profit := decimal.Zero, decimal.Zero
	for _, q := range QuarterlyTrendOf(rows) {
		sales = sales.Add(q.Sales)
		profit = profit.Add(q.Profit)
	}
	if !sales.Equal(metrics.TotalSales) {
		t.Errorf("quarterly sales %s != total %s", sales, metrics.TotalSales)
	}
	if !profit.Equal(metrics.TotalProfit) {
		t.Errorf("quarterly profit %s != total %s", profit, metrics.TotalProfit)
	}
}

func TestQuarterlyTrendOf_Empty(t *testing.T) {
	got := QuarterlyTrendOf(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestTopStates_LimitAndOrdering(t *testing.T) {
	var rows []models.SalesRecord
	for i := 0; i < 30; i++ {
		rows = append(rows, models.SalesRecord{
			State: fmt.Sprintf("S%02d", i),
			Sales: decimal.NewFromInt(int64(i % 10)),
		})
	}

	top := TopStates(rows, 20)
	if len(top) != 20 {
		t.Fatalf("expected 20 states, got %d", len(top))
	}

	included := make(map[string]bool)
	minIncluded := top[0].Sales
	for _, s := range top {
		included[s.State] = true
		if s.Sales.LessThan(minIncluded) {
			minIncluded = s.Sales
		}
	}
	for _, s := range StateSalesOf(rows) {
		if !included[s.State] && s.Sales.GreaterThan(minIncluded) {
			t.Errorf("excluded state %s has %s > included minimum %s", s.State, s.Sales, minIncluded)
		}
	}

	// Sales 9 appears for S09, S19, S29: ties keep first appearance.
	want := []string{"S09", "S19", "S29", "S08", "S18", "S28"}
	for i, name := range want {
		if top[i].State != name {
			t.Errorf("position %d: expected %s, got %s", i, name, top[i].State)
		}
	}
}

func TestTopStateHierarchyOf(t *testing.T) {
	rows := []models.SalesRecord{
		{State: "Texas", Category: "Furniture", SubCategory: "Chairs", Sales: dec("10"), Profit: dec("1")},
		{State: "California", Category: "Technology", SubCategory: "Phones", Sales: dec("100"), Profit: dec("-5")},
		{State: "Texas", Category: "Furniture", SubCategory: "Tables", Sales: dec("5"), Profit: dec("2")},
		{State: "Texas", Category: "Furniture", SubCategory: "Chairs", Sales: dec("1"), Profit: dec("1")},
		{State: "Utah", Category: "Technology", SubCategory: "Phones", Sales: dec("2"), Profit: dec("0")},
	}

	got := TopStateHierarchyOf(rows, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 states, got %d", len(got))
	}
	if got[0].Label != "California" || got[1].Label != "Texas" {
		t.Errorf("expected California then Texas, got %s, %s", got[0].Label, got[1].Label)
	}

	texas := got[1]
	if !texas.Sales.Equal(dec("16")) || !texas.Profit.Equal(dec("4")) {
		t.Errorf("unexpected Texas totals %s / %s", texas.Sales, texas.Profit)
	}
	if len(texas.Children) != 1 || texas.Children[0].ID != "Texas/Furniture" {
		t.Fatalf("unexpected Texas children %+v", texas.Children)
	}
	leaves := texas.Children[0].Children
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(leaves))
	}
	if leaves[0].ID != "Texas/Furniture/Chairs" || !leaves[0].Sales.Equal(dec("11")) || !leaves[0].Profit.Equal(dec("2")) {
		t.Errorf("unexpected Chairs leaf %+v", leaves[0])
	}
}

func TestTopStateHierarchyOf_SlashInLabel(t *testing.T) {
	rows := []models.SalesRecord{
		{State: "A", Category: "B", SubCategory: "C", Sales: dec("2"), Profit: dec("1")},
		{State: "A", Category: "B/C", SubCategory: "D", Sales: dec("1"), Profit: dec("1")},
	}

	cols := FlattenTreemap(TopStateHierarchyOf(rows, 20))
	want := []string{"A", "A/B", "A/B/C", "A/B%2FC", "A/B%2FC/D"}
	if diff := cmp.Diff(want, cols.IDs); diff != "" {
		t.Errorf("node IDs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A", "B", "C", "B/C", "D"}, cols.Labels); diff != "" {
		t.Errorf("labels should stay unescaped (-want +got):\n%s", diff)
	}

	seen := make(map[string]bool, len(cols.IDs))
	for _, id := range cols.IDs {
		if seen[id] {
			t.Errorf("duplicate node ID %q", id)
		}
		seen[id] = true
	}
}

func TestTopStateHierarchyOf_Empty(t *testing.T) {
	if got := TopStateHierarchyOf(nil, 20); len(got) != 0 {
		t.Errorf("expected no nodes, got %d", len(got))
	}
}

func TestFlattenTreemap(t *testing.T) {
	nodes := []models.TreemapNode{{
		ID: "Ohio", Label: "Ohio", Sales: dec("3"), Profit: dec("1"),
		Children: []models.TreemapNode{{
			ID: "Ohio/Furniture", Label: "Furniture", Sales: dec("3"), Profit: dec("1"),
			Children: []models.TreemapNode{{ID: "Ohio/Furniture/Chairs", Label: "Chairs", Sales: dec("3"), Profit: dec("1")}},
		}},
	}}

	got := FlattenTreemap(nodes)
	want := models.TreemapColumns{
		IDs:     []string{"Ohio", "Ohio/Furniture", "Ohio/Furniture/Chairs"},
		Labels:  []string{"Ohio", "Furniture", "Chairs"},
		Parents: []string{"", "Ohio", "Ohio/Furniture"},
		Values:  []float64{3, 3, 3},
		Colors:  []float64{1, 1, 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flattened treemap mismatch (-want +got):\n%s", diff)
	}
}

func TestFitTrend(t *testing.T) {
	points := []models.Point{{X: 0, Y: 10}, {X: 0.2, Y: 6}, {X: 0.4, Y: 2}}

	got := FitTrend(points)
	if got == nil {
		t.Fatal("expected a trend line")
	}
	if math.Abs(got.Slope-(-20)) > 1e-9 || math.Abs(got.Intercept-10) > 1e-9 {
		t.Errorf("expected y = -20x + 10, got slope %v intercept %v", got.Slope, got.Intercept)
	}
	if math.Abs(got.RSquared-1) > 1e-9 {
		t.Errorf("expected perfect fit, got r2 %v", got.RSquared)
	}
	if got.From.X != 0 || got.To.X != 0.4 || math.Abs(got.To.Y-2) > 1e-9 {
		t.Errorf("unexpected endpoints %+v -> %+v", got.From, got.To)
	}
}

func TestFitTrend_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []models.Point
	}{
		{"no points", nil},
		{"one point", []models.Point{{X: 0.1, Y: 1}}},
		{"constant x", []models.Point{{X: 0.2, Y: 1}, {X: 0.2, Y: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitTrend(tt.points); got != nil {
				t.Errorf("expected no trend, got %+v", got)
			}
		})
	}
}

func TestDiscountProfitOf(t *testing.T) {
	rows := []models.SalesRecord{
		{Discount: 0, Profit: dec("10")},
		{Discount: 0.5, Profit: dec("-4.5")},
	}
	got := DiscountProfitOf(rows)
	want := []models.Point{{X: 0, Y: 10}, {X: 0.5, Y: -4.5}}
	if diff := cmp.Diff(want, got.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if got.Trend == nil {
		t.Error("expected a trend line for two distinct discounts")
	}

	empty := DiscountProfitOf(nil)
	if len(empty.Points) != 0 || empty.Trend != nil {
		t.Errorf("expected no points and no trend, got %+v", empty)
	}
}

func TestClusterViewOf(t *testing.T) {
	customers := []models.CustomerClusterRecord{
		{CustomerName: "a", Cluster: "10", PCA1: 1},
		{CustomerName: "b", Cluster: "2", PCA1: 2},
		{CustomerName: "c", Cluster: "10", PCA1: 3},
		{CustomerName: "d", Cluster: "0", PCA1: 4},
	}

	got := ClusterViewOf(customers)
	var order []string
	for _, g := range got {
		order = append(order, g.Cluster)
	}
	if diff := cmp.Diff([]string{"0", "2", "10"}, order); diff != "" {
		t.Errorf("numeric cluster order mismatch (-want +got):\n%s", diff)
	}
	if len(got[2].Points) != 2 || got[2].Points[0].CustomerName != "a" || got[2].Points[1].CustomerName != "c" {
		t.Errorf("cluster 10 should hold a then c, got %+v", got[2].Points)
	}

	lexical := ClusterViewOf([]models.CustomerClusterRecord{{Cluster: "loyal"}, {Cluster: "big"}, {Cluster: "2"}})
	if lexical[0].Cluster != "2" || lexical[1].Cluster != "big" || lexical[2].Cluster != "loyal" {
		t.Errorf("expected lexical order, got %+v", lexical)
	}
}

func TestCustomerTableOf(t *testing.T) {
	customers := []models.CustomerClusterRecord{
		{CustomerName: "low", TotalSales: dec("5"), Cluster: "1"},
		{CustomerName: "high", TotalSales: dec("500"), TotalProfit: dec("50"), Cluster: "2"},
		{CustomerName: "tie-first", TotalSales: dec("20")},
		{CustomerName: "tie-second", TotalSales: dec("20")},
	}

	got := CustomerTableOf(customers)
	var names []string
	for _, r := range got {
		names = append(names, r.CustomerName)
	}
	if diff := cmp.Diff([]string{"high", "tie-first", "tie-second", "low"}, names); diff != "" {
		t.Errorf("customer order mismatch (-want +got):\n%s", diff)
	}
	if got[0].Cluster != "2" || !got[0].TotalProfit.Equal(dec("50")) {
		t.Errorf("row fields not carried over: %+v", got[0])
	}
	if customers[0].CustomerName != "low" {
		t.Error("input must not be reordered")
	}
}
