package templates

import (
	"bytes"
	"context"
	"html"
	"regexp"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-dashboard/internal/presentation"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestDashboard_LaysOutEveryChart(t *testing.T) {
	out := render(t, Dashboard(PageData{}))

	for _, id := range presentation.ChartIDs {
		assert.Contains(t, out, `id="chart-`+id+`"`, id)
	}
	assert.Contains(t, out, "datastar@1.0.0/bundles/datastar.js")
	assert.Contains(t, out, "plotly-2.35.2.min.js")
	assert.Contains(t, out, DashboardStream)
}

func TestDashboard_SeedsSignalsAndFilters(t *testing.T) {
	out := render(t, Dashboard(PageData{
		Divisions:      []string{"Dhaka", "Sylhet"},
		PaymentMethods: []string{"card", "cash"},
		MinDate:        "2014-01-01",
		MaxDate:        "2021-12-31",
	}))

	m := regexp.MustCompile(`data-signals="([^"]*)"`).FindStringSubmatch(out)
	require.Len(t, m, 2)
	assert.JSONEq(t, `{
		"from": "2014-01-01",
		"to": "2021-12-31",
		"divisions": ["Dhaka", "Sylhet"],
		"payments": ["card", "cash"],
		"_charts": [],
		"_empty": false,
		"_loading": false
	}`, html.UnescapeString(m[1]))

	assert.Contains(t, out, `value="Sylhet"`)
	assert.Contains(t, out, `value="cash"`)
	assert.Contains(t, out, `min="2014-01-01"`)
}

func TestDashboard_NoDateBoundsWithoutData(t *testing.T) {
	out := render(t, Dashboard(PageData{}))

	assert.Contains(t, out, `<input type="date" data-bind:from>`)
	assert.NotContains(t, out, "min=")
	assert.NotContains(t, out, "max=")
}

func TestDashboard_EscapesOptionValues(t *testing.T) {
	out := render(t, Dashboard(PageData{Divisions: []string{`<b>"x"</b>`}}))

	assert.NotContains(t, out, `<b>"x"</b>`)
	assert.Contains(t, out, "&lt;b&gt;")
}

func TestKPIs(t *testing.T) {
	out := render(t, KPIs([]presentation.KPICard{
		{ID: "revenue", Icon: "💰", Title: "Total Revenue", Value: "$1,234"},
		{ID: "aov", Icon: "🛒", Title: "Avg Order Value", Value: "N/A"},
	}))

	assert.True(t, strings.HasPrefix(out, `<section id="kpis"`))
	assert.Contains(t, out, `id="kpi-revenue"`)
	assert.Contains(t, out, "$1,234")
	assert.Contains(t, out, "N/A")
}

func TestNoticeAndSummary(t *testing.T) {
	empty := presentation.View{Empty: true, Message: presentation.NoDataMessage}
	assert.Contains(t, render(t, Notice(empty)), "No data available")
	assert.Equal(t, `<section id="summary"></section>`, render(t, Summary(empty)))

	full := presentation.View{Summary: &presentation.Summary{
		Insights:        []string{"Total Revenue: $10"},
		Opportunities:   []string{"Best Category: Food"},
		Recommendations: []string{"Focus on top-performing regions"},
	}}
	assert.Equal(t, `<div id="notice"></div>`, render(t, Notice(full)))
	out := render(t, Summary(full))
	assert.Contains(t, out, "Executive Summary")
	assert.Contains(t, out, "<li>Best Category: Food</li>")
	assert.Less(t, strings.Index(out, "Key Insights"), strings.Index(out, "Growth Opportunities"))
	assert.Less(t, strings.Index(out, "Growth Opportunities"), strings.Index(out, "Recommendations"))
}

func TestFilterInfo(t *testing.T) {
	out := render(t, FilterInfo(presentation.View{Transactions: "1,000", DateRange: "2020-01-01 to 2020-12-31"}))

	assert.Contains(t, out, `id="filter-info"`)
	assert.Contains(t, out, "1,000 transactions")
	assert.Contains(t, out, "2020-01-01 to 2020-12-31")
}
