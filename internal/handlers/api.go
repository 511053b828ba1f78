package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

const cacheControl = "no-store"

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// selection parses the request's filters, writing a 400 and returning false
// when they are malformed.
func (h *APIHandlers) selection(w http.ResponseWriter, r *http.Request) (models.FilterSelection, bool) {
	sel, err := SelectionFromQuery(r.URL.Query(), h.analytics.DefaultSelection())
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return sel, false
	}
	return sel, true
}

func (h *APIHandlers) write(w http.ResponseWriter, data any) {
	errors.WriteSuccessWithHeaders(w, data, map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	h.write(w, optionsResponse{
		Options:  h.analytics.Options(),
		Defaults: templates.SelectionSignals(h.analytics.DefaultSelection()),
	})
}

func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.selection(w, r)
	if !ok {
		return
	}
	h.write(w, h.analytics.Compute(r.Context(), sel))
}

func (h *APIHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.selection(w, r)
	if !ok {
		return
	}
	h.write(w, services.KeyMetricsOf(h.analytics.Filter(r.Context(), sel)))
}

func (h *APIHandlers) HandleQuarterly(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.selection(w, r)
	if !ok {
		return
	}
	h.write(w, services.QuarterlyTrendOf(h.analytics.Filter(r.Context(), sel)))
}

func (h *APIHandlers) HandleTreemap(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.selection(w, r)
	if !ok {
		return
	}
	nodes := services.TopStateHierarchyOf(h.analytics.Filter(r.Context(), sel), h.analytics.TopStatesLimit())
	h.write(w, map[string]any{
		"nodes":   nodes,
		"columns": services.FlattenTreemap(nodes),
	})
}

func (h *APIHandlers) HandleDiscountProfit(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.selection(w, r)
	if !ok {
		return
	}
	h.write(w, services.DiscountProfitOf(h.analytics.Filter(r.Context(), sel)))
}

func (h *APIHandlers) HandleClusters(w http.ResponseWriter, r *http.Request) {
	h.write(w, services.ClusterViewOf(h.analytics.Snapshot().Customers()))
}

func (h *APIHandlers) HandleCustomers(w http.ResponseWriter, r *http.Request) {
	h.write(w, services.CustomerTableOf(h.analytics.Snapshot().Customers()))
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
