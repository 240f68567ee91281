package analytics

import (
	"commerce-dashboard/internal/models"
)

// Report is every aggregation for one filtered record set.
type Report struct {
	KPIs            models.KPISummary               `json:"kpis"`
	Span            models.DateSpan                 `json:"span"`
	Segmentation    Segmentation                    `json:"segmentation"`
	MonthlyDivision []models.MonthlyDivisionRevenue `json:"monthly_division"`
	Quarters        []models.Revenue                `json:"quarters"`
	Divisions       []models.DivisionStats          `json:"divisions"`
	Districts       []models.DistrictRevenue        `json:"districts"`
	Categories      []models.Revenue                `json:"categories"`
	Countries       []models.CountryPerformance     `json:"countries"`
	Weekdays        []models.Revenue                `json:"weekdays"`
	Heatmap         models.Heatmap                  `json:"heatmap"`
	Payments        []models.PaymentStats           `json:"payments"`
	Banks           []models.Revenue                `json:"banks"`
}

// Build runs the full aggregation catalog. An empty input yields empty
// slices and zero figures.
func Build(records []models.Record) Report {
	return Report{
		KPIs:            Summarize(records),
		Span:            DateSpan(records),
		Segmentation:    Segment(records),
		MonthlyDivision: MonthlyDivisionRevenue(records),
		Quarters:        QuarterRevenue(records),
		Divisions:       DivisionStats(records),
		Districts:       DistrictRevenue(records),
		Categories:      TopCategories(records, TopCategoryLimit),
		Countries:       TopCountries(records, TopCountryLimit),
		Weekdays:        WeekdayRevenue(records),
		Heatmap:         HourlyHeatmap(records),
		Payments:        PaymentBreakdown(records),
		Banks:           TopBanks(records, TopBankLimit),
	}
}

// IsEmpty reports whether the report was built from no records.
func (r Report) IsEmpty() bool {
	return r.KPIs.Orders == 0
}

// DateSpan finds the earliest and latest record dates.
func DateSpan(records []models.Record) models.DateSpan {
	var span models.DateSpan
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		if span.From == nil || r.Date.Before(*span.From) {
			from := *r.Date
			span.From = &from
		}
		if span.To == nil || r.Date.After(*span.To) {
			to := *r.Date
			span.To = &to
		}
	}
	return span
}
