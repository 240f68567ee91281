package analytics

import (
	"cmp"
	"math"
	"slices"

	"commerce-dashboard/internal/models"
	"commerce-dashboard/internal/money"
)

const (
	vipMinOrders     = 5
	loyalMinOrders   = 3
	regularMinOrders = 2

	vipQuantile       = 0.75
	loyalQuantile     = 0.50
	vipThresholdQuant = 0.90
)

// Segmentation is the per-customer breakdown of the current records.
// Thresholds are quantiles of TotalSpent over the customers present, so
// they move with the filter.
type Segmentation struct {
	Customers    []models.CustomerMetric `json:"customers"`
	Counts       []models.SegmentCount   `json:"counts"`
	Median       float64                 `json:"median_spend"`
	Q75          float64                 `json:"q75_spend"`
	VIPThreshold float64                 `json:"vip_threshold"`
}

// Classify applies the segment rules in priority order.
func Classify(orderCount int, totalSpent, q50, q75 float64) models.Segment {
	switch {
	case orderCount >= vipMinOrders && totalSpent >= q75:
		return models.SegmentVIP
	case orderCount >= loyalMinOrders && totalSpent >= q50:
		return models.SegmentLoyal
	case orderCount >= regularMinOrders:
		return models.SegmentRegular
	default:
		return models.SegmentOneTime
	}
}

// Quantile returns the q-th quantile of values by linear interpolation
// between the closest ranks. It returns 0 for an empty input.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}

// CustomerMetrics aggregates spend, order count and quantity per customer,
// ordered by customer key. Segment is left empty.
func CustomerMetrics(records []models.Record) []models.CustomerMetric {
	g := newGroups[revenueSum]()
	for _, r := range records {
		g.get(r.CustomerKey).add(r)
	}

	out := make([]models.CustomerMetric, 0, len(g.keys))
	for _, k := range g.sortedKeys() {
		v := g.values[k]
		spent := v.revenue.Float64()
		out = append(out, models.CustomerMetric{
			CustomerKey:   k,
			TotalSpent:    money.Round(spent, 2),
			AvgOrderValue: money.Round(spent/float64(v.count), 2),
			OrderCount:    v.count,
			TotalQuantity: v.quantity,
		})
	}
	return out
}

// Segment classifies every customer in records.
func Segment(records []models.Record) Segmentation {
	metrics := CustomerMetrics(records)
	seg := Segmentation{
		Customers: metrics,
		Counts:    []models.SegmentCount{},
	}
	if len(metrics) == 0 {
		return seg
	}

	spent := make([]float64, len(metrics))
	for i, m := range metrics {
		spent[i] = m.TotalSpent
	}
	seg.Median = Quantile(spent, loyalQuantile)
	seg.Q75 = Quantile(spent, vipQuantile)
	seg.VIPThreshold = Quantile(spent, vipThresholdQuant)

	counts := make(map[models.Segment]int)
	for i := range seg.Customers {
		m := &seg.Customers[i]
		m.Segment = Classify(m.OrderCount, m.TotalSpent, seg.Median, seg.Q75)
		counts[m.Segment]++
	}

	for _, s := range models.Segments {
		if counts[s] > 0 {
			seg.Counts = append(seg.Counts, models.SegmentCount{Segment: s, Label: s.Label(), Customers: counts[s]})
		}
	}
	slices.SortStableFunc(seg.Counts, func(a, b models.SegmentCount) int {
		if c := cmp.Compare(b.Customers, a.Customers); c != 0 {
			return c
		}
		return cmp.Compare(a.Segment.Rank(), b.Segment.Rank())
	})
	return seg
}
