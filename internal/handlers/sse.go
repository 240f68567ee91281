package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"commerce-dashboard/internal/errors"
	"commerce-dashboard/internal/observability"
	"commerce-dashboard/internal/presentation"
	"commerce-dashboard/internal/services"
	"commerce-dashboard/internal/ui/templates"
)

// filterSignals are the client signals the sidebar binds to.
type filterSignals struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Divisions []string `json:"divisions"`
	Payments  []string `json:"payments"`
}

type SSEHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard *services.Dashboard, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

func renderComponent(r *http.Request, c templ.Component) (string, error) {
	var buf strings.Builder
	err := c.Render(r.Context(), &buf)
	return buf.String(), err
}

// HandleDashboard recomputes the view for the current filter signals and
// patches the metric cards, sidebar info, notice and summary, then pushes
// the chart specs as client-only signals.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	var signals filterSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		errors.WriteError(w, h.logger, errors.BadRequest("Invalid signals"), requestID)
		return
	}

	f, err := buildFilter(signals.From, signals.To, signals.Divisions, signals.Payments)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	view := h.dashboard.Compute(r.Context(), f)

	sse := datastar.NewSSE(w, r)

	for _, c := range fragments(view) {
		html, err := renderComponent(r, c)
		if err != nil {
			h.logger.Error("render fragment", "error", err, "request_id", requestID)
			return
		}
		if err := sse.PatchElements(html); err != nil {
			h.logger.Warn("patch elements", "error", err, "request_id", requestID)
			return
		}
	}

	chartSignals, err := json.Marshal(map[string]any{
		"_charts": view.Charts,
		"_empty":  view.Empty,
	})
	if err != nil {
		h.logger.Error("marshal chart signals", "error", err, "request_id", requestID)
		return
	}
	if err := sse.PatchSignals(chartSignals); err != nil {
		h.logger.Warn("patch signals", "error", err, "request_id", requestID)
		return
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func fragments(v presentation.View) []templ.Component {
	return []templ.Component{
		templates.Notice(v),
		templates.KPIs(v.KPIs),
		templates.FilterInfo(v),
		templates.Summary(v),
	}
}
