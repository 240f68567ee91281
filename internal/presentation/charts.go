package presentation

import (
	"strconv"

	"commerce-dashboard/internal/analytics"
	"commerce-dashboard/internal/models"
)

const (
	// TreemapRoot labels the country-level root of the district treemap.
	TreemapRoot = "Bangladesh"

	frequencyBins = 20
	currencyFmt   = "$,.0f"
	wideHeight    = 400
	narrowHeight  = 350
)

// ChartIDs lists every chart the page lays out, in display order. The
// top-banks chart is only produced when card payments carry bank names.
var ChartIDs = []string{
	"revenue-trend",
	"quarterly-revenue",
	"division-revenue",
	"district-treemap",
	"customer-segments",
	"order-frequency",
	"customer-value",
	"top-categories",
	"country-performance",
	"weekday-revenue",
	"hourly-heatmap",
	"payment-methods",
	"top-banks",
}

func buildCharts(r analytics.Report) []Chart {
	charts := []Chart{
		revenueTrend(r.MonthlyDivision),
		quarterlyRevenue(r.Quarters),
		divisionRevenue(r.Divisions),
		districtTreemap(r.Districts),
		customerSegments(r.Segmentation),
		orderFrequency(r.Segmentation.Customers),
		customerValue(r.Segmentation.Customers),
		topCategories(r.Categories),
		countryPerformance(r.Countries),
		weekdayRevenue(r.Weekdays),
		hourlyHeatmap(r.Heatmap),
		paymentMethods(r.Payments),
	}
	if len(r.Banks) > 0 {
		charts = append(charts, topBanks(r.Banks))
	}
	return charts
}

func revenueTrend(rows []models.MonthlyDivisionRevenue) Chart {
	var order []string
	byDivision := make(map[string]*Series)
	for _, row := range rows {
		s, ok := byDivision[row.Division]
		if !ok {
			s = &Series{Name: row.Division}
			byDivision[row.Division] = s
			order = append(order, row.Division)
		}
		s.Points = append(s.Points, Point{Label: row.Month, Value: row.Revenue})
	}

	series := make([]Series, 0, len(order))
	for _, d := range order {
		series = append(series, *byDivision[d])
	}

	return Chart{
		ID:         "revenue-trend",
		Kind:       KindLine,
		Title:      "Monthly Revenue Trends by Division",
		XLabel:     "Month",
		YLabel:     "Revenue ($)",
		Height:     wideHeight,
		ShowLegend: true,
		Series:     series,
	}
}

func quarterlyRevenue(rows []models.Revenue) Chart {
	return Chart{
		ID:         "quarterly-revenue",
		Kind:       KindPie,
		Title:      "Quarterly Revenue Distribution",
		ValueFmt:   currencyFmt,
		Height:     wideHeight,
		ShowLegend: true,
		Series:     []Series{revenueSeries("Revenue", rows)},
	}
}

func divisionRevenue(rows []models.DivisionStats) Chart {
	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		points = append(points, Point{Label: row.Division, Value: row.Revenue})
	}
	return Chart{
		ID:         "division-revenue",
		Kind:       KindBar,
		Title:      "Revenue by Division",
		XLabel:     "Division",
		YLabel:     "Total Revenue",
		ValueFmt:   currencyFmt,
		ColorScale: "Viridis",
		Height:     wideHeight,
		Series:     []Series{{Name: "Total Revenue", Points: points}},
	}
}

// districtTreemap emits division nodes with zero value so the renderer sums
// their districts.
func districtTreemap(rows []models.DistrictRevenue) Chart {
	tree := []TreeNode{{ID: TreemapRoot, Label: TreemapRoot}}
	seen := make(map[string]bool)
	for _, row := range rows {
		divisionID := TreemapRoot + "/" + row.Division
		if !seen[row.Division] {
			seen[row.Division] = true
			tree = append(tree, TreeNode{ID: divisionID, Label: row.Division, Parent: TreemapRoot})
		}
		tree = append(tree, TreeNode{
			ID:     divisionID + "/" + row.District,
			Label:  row.District,
			Parent: divisionID,
			Value:  row.Revenue,
		})
	}
	if len(rows) == 0 {
		tree = nil
	}

	return Chart{
		ID:         "district-treemap",
		Kind:       KindTreemap,
		Title:      "Revenue Distribution by Districts",
		ColorScale: "RdYlBu",
		Height:     wideHeight,
		Tree:       tree,
	}
}

func customerSegments(seg analytics.Segmentation) Chart {
	points := make([]Point, 0, len(seg.Counts))
	for _, c := range seg.Counts {
		points = append(points, Point{Label: c.Label, Value: float64(c.Customers)})
	}
	return Chart{
		ID:         "customer-segments",
		Kind:       KindPie,
		Title:      "Customer Segmentation",
		Height:     narrowHeight,
		ShowLegend: true,
		Series:     []Series{{Name: "Customers", Points: points}},
	}
}

func orderFrequency(customers []models.CustomerMetric) Chart {
	points := make([]Point, 0, len(customers))
	for _, c := range customers {
		points = append(points, Point{Label: c.CustomerKey, Value: float64(c.OrderCount)})
	}
	return Chart{
		ID:     "order-frequency",
		Kind:   KindHistogram,
		Title:  "Order Frequency Distribution",
		XLabel: "Order Count",
		Bins:   frequencyBins,
		Height: narrowHeight,
		Series: []Series{{Name: "Customers", Points: points}},
	}
}

func customerValue(customers []models.CustomerMetric) Chart {
	bySegment := make(map[models.Segment][]Point)
	for _, c := range customers {
		bySegment[c.Segment] = append(bySegment[c.Segment], Point{
			Label: c.CustomerKey,
			X:     float64(c.OrderCount),
			Value: c.TotalSpent,
			Size:  c.AvgOrderValue,
		})
	}

	var series []Series
	for _, s := range models.Segments {
		if points, ok := bySegment[s]; ok {
			series = append(series, Series{Name: s.Label(), Points: points})
		}
	}

	return Chart{
		ID:         "customer-value",
		Kind:       KindScatter,
		Title:      "Customer Value Analysis",
		XLabel:     "Order Count",
		YLabel:     "Total Spent",
		Height:     narrowHeight,
		ShowLegend: true,
		Series:     series,
	}
}

func topCategories(rows []models.Revenue) Chart {
	return Chart{
		ID:         "top-categories",
		Kind:       KindHBar,
		Title:      "Top 10 Categories by Revenue",
		ValueFmt:   currencyFmt,
		ColorScale: "Viridis",
		Height:     wideHeight,
		Series:     []Series{revenueSeries("Revenue", rows)},
	}
}

func countryPerformance(rows []models.CountryPerformance) Chart {
	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		points = append(points, Point{
			Label: row.Country,
			X:     float64(row.Quantity),
			Value: row.Revenue,
			Size:  row.Revenue,
		})
	}
	return Chart{
		ID:     "country-performance",
		Kind:   KindScatter,
		Title:  "Product Performance by Manufacturing Country",
		XLabel: "Quantity",
		YLabel: "Revenue",
		Height: wideHeight,
		Series: []Series{{Name: "Countries", Points: points}},
	}
}

func weekdayRevenue(rows []models.Revenue) Chart {
	return Chart{
		ID:         "weekday-revenue",
		Kind:       KindBar,
		Title:      "Revenue by Day of Week",
		ValueFmt:   currencyFmt,
		ColorScale: "Plasma",
		Height:     wideHeight,
		Series:     []Series{revenueSeries("Revenue", rows)},
	}
}

func hourlyHeatmap(hm models.Heatmap) Chart {
	chart := Chart{
		ID:         "hourly-heatmap",
		Kind:       KindHeatmap,
		Title:      "Revenue Heatmap: Day vs Hour",
		XLabel:     "Hour of Day",
		YLabel:     "Day of Week",
		ColorScale: "Viridis",
		Height:     wideHeight,
	}
	if len(hm.Values) == 0 {
		return chart
	}

	x := make([]string, len(hm.Hours))
	for i, h := range hm.Hours {
		x[i] = strconv.Itoa(h)
	}
	chart.Matrix = &Matrix{X: x, Y: hm.Weekdays, Z: hm.Values}
	return chart
}

func paymentMethods(rows []models.PaymentStats) Chart {
	tree := make([]TreeNode, 0, len(rows))
	for _, row := range rows {
		tree = append(tree, TreeNode{ID: row.Type, Label: row.Type, Value: row.Revenue})
	}
	return Chart{
		ID:         "payment-methods",
		Kind:       KindSunburst,
		Title:      "Payment Method Revenue Distribution",
		ColorScale: "Viridis",
		Height:     wideHeight,
		Tree:       tree,
	}
}

func topBanks(rows []models.Revenue) Chart {
	return Chart{
		ID:         "top-banks",
		Kind:       KindPie,
		Title:      "Top Banks by Revenue (Card Payments)",
		Height:     wideHeight,
		ShowLegend: true,
		Series:     []Series{revenueSeries("Revenue", rows)},
	}
}

func revenueSeries(name string, rows []models.Revenue) Series {
	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		points = append(points, Point{Label: row.Key, Value: row.Revenue})
	}
	return Series{Name: name, Points: points}
}
