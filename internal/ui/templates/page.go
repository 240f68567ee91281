package templates

import "encoding/json"

// DashboardStream is the SSE endpoint the page calls on load and on every
// filter change.
const DashboardStream = "/sse/dashboard"

// Element IDs patched by the dashboard SSE stream.
const (
	KPIsID       = "kpis"
	FilterInfoID = "filter-info"
	NoticeID     = "notice"
	SummaryID    = "summary"
)

var fetchDashboard = "@get('" + DashboardStream + "')"

// PageData seeds the sidebar. Every division and payment method starts
// selected and the date inputs start at the full span.
type PageData struct {
	Divisions      []string
	PaymentMethods []string
	MinDate        string
	MaxDate        string
}

// Signals is the initial Datastar signal store. Names starting with an
// underscore stay on the client and are not sent back with requests.
type Signals struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Divisions []string `json:"divisions"`
	Payments  []string `json:"payments"`
	Charts    []any    `json:"_charts"`
	Empty     bool     `json:"_empty"`
	Loading   bool     `json:"_loading"`
}

type section struct {
	title  string
	charts []string
}

var sections = []section{
	{"📈 Revenue Trends & Performance", []string{"revenue-trend", "quarterly-revenue"}},
	{"🗺️ Geographic Performance Analysis", []string{"division-revenue", "district-treemap"}},
	{"👥 Customer Behavior Analytics", []string{"customer-segments", "order-frequency", "customer-value"}},
	{"🛍️ Product Performance Analytics", []string{"top-categories", "country-performance"}},
	{"⏰ Temporal Analytics", []string{"weekday-revenue", "hourly-heatmap"}},
	{"💳 Payment Analytics", []string{"payment-methods", "top-banks"}},
}

func initialSignals(p PageData) Signals {
	return Signals{
		From:      p.MinDate,
		To:        p.MaxDate,
		Divisions: nonNil(p.Divisions),
		Payments:  nonNil(p.PaymentMethods),
		Charts:    []any{},
	}
}

func signalsJSON(p PageData) (string, error) {
	b, err := json.Marshal(initialSignals(p))
	return string(b), err
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
