package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/dataset"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestAnalytics() *services.Analytics {
	sales := []models.SalesRecord{
		{OrderID: "A", OrderDate: day(2023, 2, 10), Region: "West", Category: "Furniture", SubCategory: "Chairs", Segment: "Consumer", State: "California", Sales: decimal.NewFromInt(100), Profit: decimal.NewFromInt(20)},
		{OrderID: "A", OrderDate: day(2023, 2, 10), Region: "West", Category: "Furniture", SubCategory: "Tables", Segment: "Consumer", State: "California", Sales: decimal.NewFromInt(50), Profit: decimal.NewFromInt(5), Discount: 0.2},
		{OrderID: "B", OrderDate: day(2023, 5, 20), Region: "East", Category: "Technology", SubCategory: "Phones", Segment: "Corporate", State: "New York", Sales: decimal.NewFromInt(80), Profit: decimal.NewFromInt(-10), Discount: 0.4},
	}
	customers := []models.CustomerClusterRecord{
		{CustomerName: "Ada", TotalSales: decimal.NewFromInt(10), TotalProfit: decimal.NewFromInt(1), PCA1: 0.5, PCA2: 1, Cluster: "1"},
		{CustomerName: "Grace", TotalSales: decimal.NewFromInt(30), TotalProfit: decimal.NewFromInt(3), PCA1: -1, PCA2: 0.2, Cluster: "0"},
	}
	return services.NewAnalytics(dataset.NewSnapshot(sales, customers), services.WithLogger(testLogger))
}

// decodeData unwraps the {"success":true,"data":...} envelope into v.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("expected success=true, body data %s", envelope.Data)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
}
