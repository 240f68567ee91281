package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"commerce-dashboard/internal/analytics"
	"commerce-dashboard/internal/errors"
	"commerce-dashboard/internal/observability"
	"commerce-dashboard/internal/services"
)

const cacheMaxAge = "public, max-age=300"

type APIHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewAPIHandlers(dashboard *services.Dashboard, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

// HandleOptions lists the divisions, payment methods and date span the
// filters can choose from.
func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	headers := map[string]string{
		"Cache-Control": cacheMaxAge,
	}

	errors.WriteSuccessWithHeaders(w, h.dashboard.Options(), headers)
}

// HandleDashboard computes the full view for the filter in the query
// string: from, to (YYYY-MM-DD) and repeated division and payment values.
func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	view := h.dashboard.Compute(r.Context(), f)

	errors.WriteSuccessWithHeaders(w, view, map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

// HandleHealth reports 503 while the base table holds no records.
func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.dashboard.Len() == 0 {
		errors.WriteError(w, h.logger, errors.ServiceUnavailable("No transactions loaded"), observability.GetRequestID(r.Context()))
		return
	}

	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {

	stats := h.dashboard.Stats()

	errors.WriteSuccess(w, stats)
}

func filterFromQuery(q url.Values) (analytics.Filter, error) {
	return buildFilter(q.Get("from"), q.Get("to"), q["division"], q["payment"])
}

func buildFilter(from, to string, divisions, payments []string) (analytics.Filter, error) {
	var f analytics.Filter
	var err error

	if f.From, err = analytics.ParseDay(from); err != nil {
		return f, errors.InvalidFilter(err, "from")
	}
	if f.To, err = analytics.ParseDay(to); err != nil {
		return f, errors.InvalidFilter(err, "to")
	}
	f.Divisions = nonEmpty(divisions)
	f.PaymentMethods = nonEmpty(payments)
	return f, nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
