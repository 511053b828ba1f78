package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleRefresh reads the filter signals, recomputes every view, and patches
// the metric cards, customer table and chart signals.
func (h *SSEHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := observability.GetRequestID(ctx)

	var signals filterSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "malformed datastar signals"), requestID)
		return
	}

	sse := datastar.NewSSE(w, r)

	sel, err := signals.selection(h.analytics.DefaultSelection())
	if err != nil {
		h.patchError(sse, r, errors.MessageOf(err))
		return
	}

	dash := h.analytics.Compute(ctx, sel)
	treemap := services.FlattenTreemap(dash.Treemap)

	fragments := []templ.Component{
		templates.ErrorBanner(""),
		templates.Metrics(dash.Metrics, dash.FilteredRows),
		templates.CustomerTable(dash.Customers),
	}
	for _, fragment := range fragments {
		html, err := templates.RenderString(ctx, fragment)
		if err != nil {
			h.logger.Error("render fragment", "error", err, "request_id", requestID)
			return
		}
		if err := sse.PatchElements(html); err != nil {
			h.logger.Warn("patch elements", "error", err, "request_id", requestID)
			return
		}
	}

	payload, err := json.Marshal(map[string]any{
		templates.ChartsSignal: templates.Charts(dash, treemap),
	})
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err, "request_id", requestID)
		return
	}
	if err := sse.PatchSignals(payload); err != nil {
		h.logger.Warn("patch signals", "error", err, "request_id", requestID)
	}
}

func (h *SSEHandlers) patchError(sse *datastar.ServerSentEventGenerator, r *http.Request, message string) {
	html, err := templates.RenderString(r.Context(), templates.ErrorBanner(message))
	if err != nil {
		h.logger.Error("render error banner", "error", err)
		return
	}
	if err := sse.PatchElements(html); err != nil {
		h.logger.Warn("patch error banner", "error", err)
	}
}
