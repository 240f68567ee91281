package presentation

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"commerce-dashboard/internal/analytics"
	"commerce-dashboard/internal/models"
	"commerce-dashboard/internal/money"
)

const (
	NoDataMessage = "No data available for the selected filters. Please adjust your selection."
	notAvailable  = "N/A"
)

var recommendations = []string{
	"Focus on top-performing regions",
	"Enhance customer loyalty programs",
	"Optimize inventory for peak hours",
}

var titleCase = cases.Title(language.English)

// Build maps a report to cards, charts and summary text. It only selects
// among values already in the report.
func Build(r analytics.Report) View {
	v := View{
		Transactions: money.Grouped(float64(r.KPIs.Orders), 0),
		DateRange:    dateRange(r.Span),
		KPIs:         kpiCards(r.KPIs),
		Charts:       []Chart{},
	}
	if r.IsEmpty() {
		v.Empty = true
		v.Message = NoDataMessage
		return v
	}

	v.Charts = buildCharts(r)
	v.Summary = buildSummary(r)
	return v
}

func kpiCards(k models.KPISummary) []KPICard {
	avg := notAvailable
	if k.AverageOrderValue != nil {
		avg = money.Format(*k.AverageOrderValue, 2)
	}
	return []KPICard{
		{ID: "revenue", Icon: "💰", Title: "Total Revenue", Value: money.Format(k.Revenue, 0)},
		{ID: "orders", Icon: "📦", Title: "Total Orders", Value: money.Grouped(float64(k.Orders), 0)},
		{ID: "aov", Icon: "🛒", Title: "Avg Order Value", Value: avg},
		{ID: "customers", Icon: "👥", Title: "Total Customers", Value: money.Grouped(float64(k.Customers), 0)},
		{ID: "products", Icon: "🏷️", Title: "Products Sold", Value: money.Grouped(float64(k.Products), 0)},
	}
}

func buildSummary(r analytics.Report) *Summary {
	topDivision := notAvailable
	if i := argmax(len(r.Divisions), func(i int) float64 { return r.Divisions[i].Revenue }); i >= 0 {
		topDivision = r.Divisions[i].Division
	}

	peakDay := notAvailable
	if i := argmax(len(r.Weekdays), func(i int) float64 { return r.Weekdays[i].Revenue }); i >= 0 {
		peakDay = r.Weekdays[i].Key
	}

	// Categories is already ranked by revenue.
	bestCategory := notAvailable
	if len(r.Categories) > 0 {
		bestCategory = r.Categories[0].Key
	}

	preference := notAvailable
	if i := argmax(len(r.Payments), func(i int) float64 { return float64(r.Payments[i].Transactions) }); i >= 0 {
		preference = titleCase.String(r.Payments[i].Type)
	}

	return &Summary{
		Insights: []string{
			"Total Revenue: " + money.Format(r.KPIs.Revenue, 0),
			"Top Division: " + topDivision,
			"Peak Sales Day: " + peakDay,
		},
		Opportunities: []string{
			"Best Category: " + bestCategory,
			"VIP Customer Threshold: " + money.Format(r.Segmentation.VIPThreshold, 0),
			"Payment Preference: " + preference,
		},
		Recommendations: recommendations,
	}
}

// argmax returns the index of the first maximum, or -1 when n is 0.
func argmax(n int, value func(int) float64) int {
	best := -1
	for i := 0; i < n; i++ {
		if best < 0 || value(i) > value(best) {
			best = i
		}
	}
	return best
}

func dateRange(span models.DateSpan) string {
	if span.From == nil || span.To == nil {
		return notAvailable
	}
	return span.From.Format(analytics.DayLayout) + " to " + span.To.Format(analytics.DayLayout)
}
