package analytics

import (
	"commerce-dashboard/internal/models"
	"commerce-dashboard/internal/money"
)

// Summarize computes the headline figures. AverageOrderValue is nil when
// there are no orders.
func Summarize(records []models.Record) models.KPISummary {
	var revenue money.Accumulator
	customers := make(map[string]struct{})
	products := make(map[string]struct{})

	for _, r := range records {
		revenue.Add(r.TotalPrice)
		customers[r.CustomerKey] = struct{}{}
		products[r.ItemKey] = struct{}{}
	}

	kpi := models.KPISummary{
		Revenue:   revenue.Float64(),
		Orders:    len(records),
		Customers: len(customers),
		Products:  len(products),
	}
	if kpi.Orders > 0 {
		avg := kpi.Revenue / float64(kpi.Orders)
		kpi.AverageOrderValue = &avg
	}
	return kpi
}
