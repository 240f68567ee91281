package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-dashboard/internal/models"
)

// spread repeats a customer's spend over n orders.
func spread(customer string, orders int, total float64) []models.Record {
	out := make([]models.Record, orders)
	for i := range out {
		out[i] = rec(customer, total/float64(orders))
	}
	return out
}

func segmentFixture() []models.Record {
	var records []models.Record
	records = append(records, spread("A", 1, 10)...)
	records = append(records, spread("B", 2, 50)...)
	records = append(records, spread("C", 4, 200)...)
	records = append(records, spread("D", 6, 900)...)
	return records
}

func TestQuantile(t *testing.T) {
	values := []float64{900, 10, 200, 50}

	assert.InDelta(t, 125.0, Quantile(values, 0.50), 1e-9)
	assert.InDelta(t, 375.0, Quantile(values, 0.75), 1e-9)
	assert.InDelta(t, 10.0, Quantile(values, 0), 1e-9)
	assert.InDelta(t, 900.0, Quantile(values, 1), 1e-9)
	assert.Equal(t, 0.0, Quantile(nil, 0.5))
	assert.Equal(t, []float64{900, 10, 200, 50}, values, "input is not reordered")
}

func TestSegment(t *testing.T) {
	seg := Segment(segmentFixture())

	assert.InDelta(t, 125.0, seg.Median, 1e-9)
	assert.InDelta(t, 375.0, seg.Q75, 1e-9)

	got := make(map[string]models.Segment)
	for _, c := range seg.Customers {
		got[c.CustomerKey] = c.Segment
	}
	assert.Equal(t, map[string]models.Segment{
		"A": models.SegmentOneTime,
		"B": models.SegmentRegular,
		"C": models.SegmentLoyal,
		"D": models.SegmentVIP,
	}, got)

	require.Len(t, seg.Counts, 4)
	for _, c := range seg.Counts {
		assert.Equal(t, 1, c.Customers)
	}
	assert.Equal(t, "VIP Customers", seg.Counts[0].Label, "ties keep priority order")
}

func TestCustomerMetrics(t *testing.T) {
	metrics := CustomerMetrics(segmentFixture())
	require.Len(t, metrics, 4)

	d := metrics[3]
	assert.Equal(t, "D", d.CustomerKey)
	assert.Equal(t, 6, d.OrderCount)
	assert.Equal(t, 6, d.TotalQuantity)
	assert.InDelta(t, 900.0, d.TotalSpent, 1e-9)
	assert.InDelta(t, 150.0, d.AvgOrderValue, 1e-9)
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		orders int
		spent  float64
		want   models.Segment
	}{
		{"one order is one-time", 1, 1e6, models.SegmentOneTime},
		{"two orders is regular", 2, 1e6, models.SegmentRegular},
		{"three orders below median", 3, 99, models.SegmentRegular},
		{"three orders at median", 3, 100, models.SegmentLoyal},
		{"four orders below q75", 4, 199, models.SegmentLoyal},
		{"five orders at q75", 5, 200, models.SegmentVIP},
		{"five orders below median", 5, 50, models.SegmentRegular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.orders, tt.spent, 100, 200))
		})
	}
}

func TestClassify_MonotoneInSpend(t *testing.T) {
	for orders := 1; orders <= 8; orders++ {
		prev := Classify(orders, 0, 100, 200).Rank()
		for spent := 0.0; spent <= 400; spent += 25 {
			rank := Classify(orders, spent, 100, 200).Rank()
			assert.LessOrEqual(t, rank, prev, "orders=%d spent=%v", orders, spent)
			prev = rank
		}
	}
}

func TestClassify_MonotoneInOrders(t *testing.T) {
	for spent := 0.0; spent <= 400; spent += 25 {
		prev := Classify(1, spent, 100, 200).Rank()
		for orders := 2; orders <= 10; orders++ {
			rank := Classify(orders, spent, 100, 200).Rank()
			assert.LessOrEqual(t, rank, prev, "orders=%d spent=%v", orders, spent)
			prev = rank
		}
	}
}

func TestSegment_CountTiesFollowPriority(t *testing.T) {
	// Two one-time buyers and two regular customers: equal counts keep
	// Regular ahead of OneTime.
	records := append(spread("A", 1, 10), spread("B", 1, 10)...)
	records = append(records, spread("C", 2, 10)...)
	records = append(records, spread("D", 2, 10)...)

	seg := Segment(records)

	require.Len(t, seg.Counts, 2)
	assert.Equal(t, models.SegmentRegular, seg.Counts[0].Segment)
	assert.Equal(t, models.SegmentOneTime, seg.Counts[1].Segment)
}

func TestSegment_Empty(t *testing.T) {
	seg := Segment(nil)
	assert.Empty(t, seg.Customers)
	assert.NotNil(t, seg.Counts)
	assert.Zero(t, seg.VIPThreshold)
}

func TestSegment_IsFilterRelative(t *testing.T) {
	// A alone has the whole population's spend, so its thresholds equal its
	// own spend and five orders make it VIP.
	seg := Segment(spread("A", 5, 10))
	require.Len(t, seg.Customers, 1)
	assert.Equal(t, models.SegmentVIP, seg.Customers[0].Segment)
}
