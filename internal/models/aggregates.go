package models

import "time"

type Segment string

const (
	SegmentVIP     Segment = "VIP"
	SegmentLoyal   Segment = "Loyal"
	SegmentRegular Segment = "Regular"
	SegmentOneTime Segment = "OneTime"
)

// Segments lists every segment in classification priority order.
var Segments = []Segment{SegmentVIP, SegmentLoyal, SegmentRegular, SegmentOneTime}

func (s Segment) Label() string {
	switch s {
	case SegmentVIP:
		return "VIP Customers"
	case SegmentLoyal:
		return "Loyal Customers"
	case SegmentRegular:
		return "Regular Customers"
	default:
		return "One-time Buyers"
	}
}

// Rank is the segment's priority; lower is better.
func (s Segment) Rank() int {
	for i, seg := range Segments {
		if seg == s {
			return i
		}
	}
	return len(Segments)
}

type CustomerMetric struct {
	CustomerKey   string  `json:"customer_key"`
	TotalSpent    float64 `json:"total_spent"`
	AvgOrderValue float64 `json:"avg_order_value"`
	OrderCount    int     `json:"order_count"`
	TotalQuantity int     `json:"total_quantity"`
	Segment       Segment `json:"segment"`
}

type SegmentCount struct {
	Segment   Segment `json:"segment"`
	Label     string  `json:"label"`
	Customers int     `json:"customers"`
}

type KPISummary struct {
	Revenue           float64  `json:"revenue"`
	Orders            int      `json:"orders"`
	AverageOrderValue *float64 `json:"average_order_value"`
	Customers         int      `json:"customers"`
	Products          int      `json:"products"`
}

// Revenue is a single keyed sum.
type Revenue struct {
	Key     string  `json:"key"`
	Revenue float64 `json:"revenue"`
}

type DivisionStats struct {
	Division          string  `json:"division"`
	Revenue           float64 `json:"revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
	Quantity          int     `json:"quantity"`
	Customers         int     `json:"customers"`
}

type DistrictRevenue struct {
	Division string  `json:"division"`
	District string  `json:"district"`
	Revenue  float64 `json:"revenue"`
}

type MonthlyDivisionRevenue struct {
	Month    string  `json:"month"`
	Division string  `json:"division"`
	Revenue  float64 `json:"revenue"`
}

type CountryPerformance struct {
	Country  string  `json:"country"`
	Revenue  float64 `json:"revenue"`
	Quantity int     `json:"quantity"`
}

type PaymentStats struct {
	Type         string  `json:"type"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
	Average      float64 `json:"average"`
}

// Heatmap holds revenue by weekday (rows, Monday first) and hour of day
// (columns, 0-23).
type Heatmap struct {
	Weekdays []string    `json:"weekdays"`
	Hours    []int       `json:"hours"`
	Values   [][]float64 `json:"values"`
}

// DateSpan is the first and last date present; both nil when no record
// has a date.
type DateSpan struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}
