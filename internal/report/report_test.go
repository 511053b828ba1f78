package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

func testDashboard() *models.Dashboard {
	return &models.Dashboard{
		Selection: models.FilterSelection{
			Regions:    []string{"West"},
			Categories: []string{"Furniture", "Technology"},
			Segments:   []string{},
			Start:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			End:        time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		FilteredRows: 3,
		Metrics: models.KeyMetrics{
			TotalSales:  decimal.RequireFromString("1234.5"),
			TotalProfit: decimal.NewFromInt(-25),
			TotalOrders: 2,
		},
		Quarterly: []models.QuarterTotals{
			{Quarter: "2023Q1", Year: 2023, Q: 1, Sales: decimal.NewFromInt(1000), Profit: decimal.NewFromInt(10)},
			{Quarter: "2023Q2", Year: 2023, Q: 2, Sales: decimal.RequireFromString("234.5"), Profit: decimal.NewFromInt(-35)},
		},
		Treemap: []models.TreemapNode{
			{ID: "California", Label: "California", Sales: decimal.NewFromInt(1234), Profit: decimal.NewFromInt(-25),
				Children: []models.TreemapNode{{ID: "California/Furniture", Label: "Furniture"}, {ID: "California/Technology", Label: "Technology"}}},
		},
		DiscountProfit: models.DiscountProfit{
			Points: []models.Point{{X: 0, Y: 10}, {X: 0.5, Y: -35}},
			Trend:  &models.TrendLine{Slope: -90, Intercept: 10, RSquared: 1},
		},
		Clusters: []models.ClusterGroup{
			{Cluster: "0", Points: make([]models.ClusterPoint, 3)},
			{Cluster: "1", Points: make([]models.ClusterPoint, 1)},
		},
		Customers: []models.CustomerRow{
			{CustomerName: "Grace | Hopper", TotalSales: decimal.NewFromInt(300), TotalProfit: decimal.NewFromInt(30), Cluster: "0"},
			{CustomerName: "Ada", TotalSales: decimal.NewFromInt(100), TotalProfit: decimal.NewFromInt(10), Cluster: "1"},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(testDashboard(), 1)

	expected := []string{
		"# Sales Analysis Report",
		"- **Regions:** West",
		"- **Segments:** _none_",
		"- **Order dates:** 2023-01-01 to 2023-06-30",
		"| $1,234.50 | -$25.00 | 2 |",
		"| 2023Q2 | $234.50 | -$35.00 |",
		"## Top 1 States by Sales",
		"| 1 | California | $1,234.00 | -$25.00 | Furniture, Technology |",
		"profit = -90.00 × discount +10.00 (r² = 1.000)",
		"| 0 | 3 |",
		"## Top Customers (1 of 2)",
		`| Grace \| Hopper | $300.00 | $30.00 | 0 |`,
	}
	for _, want := range expected {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "| Ada |") {
		t.Error("customer list should be cut at the limit")
	}
}

func TestMarkdown_Empty(t *testing.T) {
	md := Markdown(&models.Dashboard{}, DefaultTopCustomers)

	for _, want := range []string{
		"| $0.00 | $0.00 | 0 |",
		"No sales in the selected range.",
		"No states to rank.",
		"Not enough variation in discount for a trend line.",
		"No customer clusters loaded.",
		"## Top Customers (0 of 0)",
		"_unbounded_",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
}

func TestRender(t *testing.T) {
	out, err := Render(Markdown(testDashboard(), 0), 100)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{"Sales Analysis Report", "2023Q1", "California"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected rendered output to contain %q", want)
		}
	}
}
