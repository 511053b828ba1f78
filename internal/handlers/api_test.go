package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

func TestAPIHandlers_HandleHealth(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handlers.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	var data map[string]string
	decodeData(t, w, &data)
	if data["status"] != "healthy" {
		t.Errorf("expected healthy status, got %q", data["status"])
	}
}

func TestAPIHandlers_HandleMetrics(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger)

	tests := []struct {
		name       string
		query      string
		wantSales  int64
		wantProfit int64
		wantOrders int
	}{
		{"all records", "", 230, 15, 2},
		{"west only", "?region=West", 150, 25, 1},
		{"empty segment set", "?segment=", 0, 0, 0},
		{"inverted range", "?start=2023-12-01&end=2023-01-01", 0, 0, 0},
		{"range covers second order", "?start=2023-05-20&end=2023-05-20", 80, -10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/metrics"+tt.query, nil)
			w := httptest.NewRecorder()
			handlers.HandleMetrics(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
			}
			if got := w.Header().Get("Cache-Control"); got != "no-store" {
				t.Errorf("expected Cache-Control no-store, got %q", got)
			}
			var m models.KeyMetrics
			decodeData(t, w, &m)
			if !m.TotalSales.Equal(decimal.NewFromInt(tt.wantSales)) {
				t.Errorf("total sales = %s, want %d", m.TotalSales, tt.wantSales)
			}
			if !m.TotalProfit.Equal(decimal.NewFromInt(tt.wantProfit)) {
				t.Errorf("total profit = %s, want %d", m.TotalProfit, tt.wantProfit)
			}
			if m.TotalOrders != tt.wantOrders {
				t.Errorf("total orders = %d, want %d", m.TotalOrders, tt.wantOrders)
			}
		})
	}
}

func TestAPIHandlers_BadDate(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger)

	endpoints := map[string]http.HandlerFunc{
		"dashboard":       handlers.HandleDashboard,
		"metrics":         handlers.HandleMetrics,
		"quarterly":       handlers.HandleQuarterly,
		"treemap":         handlers.HandleTreemap,
		"discount-profit": handlers.HandleDiscountProfit,
	}
	for name, handle := range endpoints {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/"+name+"?start=not-a-date", nil)
			w := httptest.NewRecorder()
			handle(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}
			var body struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode JSON: %v", err)
			}
			if body.Success || body.Error.Code != "BAD_REQUEST" {
				t.Errorf("unexpected error body: %+v", body)
			}
		})
	}
}

func TestAPIHandlers_HandleQuarterly(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger)

	req := httptest.NewRequest(http.MethodGet, "/api/quarterly", nil)
	w := httptest.NewRecorder()
	handlers.HandleQuarterly(w, req)

	var quarters []models.QuarterTotals
	decodeData(t, w, &quarters)
	if len(quarters) != 2 {
		t.Fatalf("expected 2 quarters, got %d", len(quarters))
	}
	if quarters[0].Quarter != "2023Q1" || quarters[1].Quarter != "2023Q2" {
		t.Errorf("unexpected quarter order: %s, %s", quarters[0].Quarter, quarters[1].Quarter)
	}
	if !quarters[0].Sales.Equal(decimal.NewFromInt(150)) {
		t.Errorf("2023Q1 sales = %s, want 150", quarters[0].Sales)
	}
}

func TestAPIHandlers_HandleTreemap(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger)

	req := httptest.NewRequest(http.MethodGet, "/api/treemap", nil)
	w := httptest.NewRecorder()
	handlers.HandleTreemap(w, req)

	var data struct {
		Nodes   []models.TreemapNode  `json:"nodes"`
		Columns models.TreemapColumns `json:"columns"`
	}
	decodeData(t, w, &data)
	if len(data.Nodes) != 2 || data.Nodes[0].Label != "California" {
		t.Fatalf("expected California first of 2 states, got %+v", data.Nodes)
	}
	// 2 states, 2 categories, 3 sub-categories
	if len(data.Columns.IDs) != 7 {
		t.Errorf("expected 7 treemap nodes, got %d", len(data.Columns.IDs))
	}
}

func TestAPIHandlers_HandleDiscountProfit(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger)

	req := httptest.NewRequest(http.MethodGet, "/api/discount-profit", nil)
	w := httptest.NewRecorder()
	handlers.HandleDiscountProfit(w, req)

	var dp models.DiscountProfit
	decodeData(t, w, &dp)
	if len(dp.Points) != 3 {
		t.Errorf("expected 3 points, got %d", len(dp.Points))
	}
	if dp.Trend == nil || dp.Trend.Slope >= 0 {
		t.Errorf("expected a falling trend, got %+v", dp.Trend)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/discount-profit?region=", nil)
	w = httptest.NewRecorder()
	handlers.HandleDiscountProfit(w, req)

	dp = models.DiscountProfit{}
	decodeData(t, w, &dp)
	if len(dp.Points) != 0 || dp.Trend != nil {
		t.Errorf("empty selection should have no points and no trend, got %+v", dp)
	}
}

func TestAPIHandlers_CustomerViews(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger)

	req := httptest.NewRequest(http.MethodGet, "/api/customers?region=", nil)
	w := httptest.NewRecorder()
	handlers.HandleCustomers(w, req)

	var rows []models.CustomerRow
	decodeData(t, w, &rows)
	if len(rows) != 2 || rows[0].CustomerName != "Grace" {
		t.Errorf("customer table ignores filters and sorts by sales, got %+v", rows)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/clusters", nil)
	w = httptest.NewRecorder()
	handlers.HandleClusters(w, req)

	var groups []models.ClusterGroup
	decodeData(t, w, &groups)
	if len(groups) != 2 || groups[0].Cluster != "0" || groups[1].Cluster != "1" {
		t.Errorf("unexpected cluster groups: %+v", groups)
	}
}

func TestAPIHandlers_HandleOptions(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger)

	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	w := httptest.NewRecorder()
	handlers.HandleOptions(w, req)

	var data struct {
		Options  models.FilterOptions `json:"options"`
		Defaults struct {
			Start string `json:"start"`
			End   string `json:"end"`
		} `json:"defaults"`
	}
	decodeData(t, w, &data)
	if len(data.Options.Regions) != 2 || data.Options.Regions[0] != "West" {
		t.Errorf("unexpected regions: %v", data.Options.Regions)
	}
	if data.Defaults.Start != "2023-02-10" || data.Defaults.End != "2023-05-20" {
		t.Errorf("unexpected default range %s..%s", data.Defaults.Start, data.Defaults.End)
	}
}

func TestAPIHandlers_HandleStats(t *testing.T) {
	handlers := NewAPIHandlers(createTestAnalytics(), testLogger)

	req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
	w := httptest.NewRecorder()
	handlers.HandleStats(w, req)

	var stats map[string]any
	decodeData(t, w, &stats)
	if stats["sales_rows"] != float64(3) || stats["customer_rows"] != float64(2) {
		t.Errorf("unexpected stats: %v", stats)
	}
}
