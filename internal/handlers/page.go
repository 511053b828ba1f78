package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

const (
	renderTimeout = 10 * time.Second
	pageTitle     = "Sales Analysis Dashboard"
)

type PageHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewPageHandlers(analytics *services.Analytics, logger *slog.Logger) *PageHandlers {
	return &PageHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleDashboard renders the full page for the selection in the query
// string, or for every record when there is none.
func (h *PageHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	sel, err := SelectionFromQuery(r.URL.Query(), h.analytics.DefaultSelection())
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(ctx))
		return
	}

	dash := h.analytics.Compute(ctx, sel)
	page := templates.Dashboard(templates.PageData{
		Title:     pageTitle,
		Options:   h.analytics.Options(),
		Dashboard: dash,
		Treemap:   services.FlattenTreemap(dash.Treemap),
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheControl)
	if err := page.Render(ctx, w); err != nil {
		h.logger.Error("render dashboard", "error", err, "request_id", observability.GetRequestID(ctx))
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}
