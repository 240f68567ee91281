package analytics

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"commerce-dashboard/internal/models"
	"commerce-dashboard/internal/money"
)

const (
	TopCategoryLimit = 10
	TopCountryLimit  = 10
	TopBankLimit     = 8

	cardPayment = "card"
	monthLayout = "2006-01"
)

// Weekdays is the fixed calendar order used by every weekday grouping.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// groups keeps one accumulator per key in first-seen order.
type groups[V any] struct {
	keys   []string
	values map[string]*V
}

func newGroups[V any]() *groups[V] {
	return &groups[V]{values: make(map[string]*V)}
}

func (g *groups[V]) get(key string) *V {
	v, ok := g.values[key]
	if !ok {
		v = new(V)
		g.values[key] = v
		g.keys = append(g.keys, key)
	}
	return v
}

// sortedKeys orders keys numerically when both parse as integers and
// lexically otherwise.
func (g *groups[V]) sortedKeys() []string {
	keys := slices.Clone(g.keys)
	slices.SortStableFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b string) int {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(ai, bi)
	}
	return cmp.Compare(a, b)
}

type revenueSum struct {
	revenue  money.Accumulator
	quantity int
	count    int
}

func (s *revenueSum) add(r models.Record) {
	s.revenue.Add(r.TotalPrice)
	s.quantity += r.Quantity
	s.count++
}

// topRevenue sorts by revenue descending, keeping first-seen order for
// ties, and truncates to limit.
func topRevenue(g *groups[revenueSum], limit int) []models.Revenue {
	out := make([]models.Revenue, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, models.Revenue{Key: k, Revenue: g.values[k].revenue.Float64()})
	}
	slices.SortStableFunc(out, func(a, b models.Revenue) int {
		return cmp.Compare(b.Revenue, a.Revenue)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func DivisionStats(records []models.Record) []models.DivisionStats {
	g := newGroups[struct {
		revenueSum
		customers map[string]struct{}
	}]()
	for _, r := range records {
		if !r.StoreFound || r.Division == "" {
			continue
		}
		v := g.get(r.Division)
		v.add(r)
		if v.customers == nil {
			v.customers = make(map[string]struct{})
		}
		v.customers[r.CustomerKey] = struct{}{}
	}

	out := make([]models.DivisionStats, 0, len(g.keys))
	for _, k := range g.sortedKeys() {
		v := g.values[k]
		revenue := v.revenue.Float64()
		out = append(out, models.DivisionStats{
			Division:          k,
			Revenue:           money.Round(revenue, 2),
			AverageOrderValue: money.Round(revenue/float64(v.count), 2),
			Quantity:          v.quantity,
			Customers:         len(v.customers),
		})
	}
	return out
}

func DistrictRevenue(records []models.Record) []models.DistrictRevenue {
	type key struct{ division, district string }
	sums := make(map[key]*money.Accumulator)
	var keys []key
	for _, r := range records {
		if !r.StoreFound || r.Division == "" || r.District == "" {
			continue
		}
		k := key{r.Division, r.District}
		acc, ok := sums[k]
		if !ok {
			acc = &money.Accumulator{}
			sums[k] = acc
			keys = append(keys, k)
		}
		acc.Add(r.TotalPrice)
	}

	slices.SortStableFunc(keys, func(a, b key) int {
		if c := compareKeys(a.division, b.division); c != 0 {
			return c
		}
		return compareKeys(a.district, b.district)
	})

	out := make([]models.DistrictRevenue, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.DistrictRevenue{Division: k.division, District: k.district, Revenue: sums[k].Float64()})
	}
	return out
}

func QuarterRevenue(records []models.Record) []models.Revenue {
	g := newGroups[revenueSum]()
	for _, r := range records {
		if !r.TimeFound || r.Quarter == "" {
			continue
		}
		g.get(r.Quarter).add(r)
	}

	out := make([]models.Revenue, 0, len(g.keys))
	for _, k := range g.sortedKeys() {
		out = append(out, models.Revenue{Key: k, Revenue: g.values[k].revenue.Float64()})
	}
	return out
}

// MonthlyDivisionRevenue sums revenue per calendar month and division,
// ordered by month and then division.
func MonthlyDivisionRevenue(records []models.Record) []models.MonthlyDivisionRevenue {
	type key struct{ month, division string }
	sums := make(map[key]*money.Accumulator)
	var keys []key
	for _, r := range records {
		if !r.HasDate() || !r.StoreFound {
			continue
		}
		k := key{r.Date.Format(monthLayout), r.Division}
		acc, ok := sums[k]
		if !ok {
			acc = &money.Accumulator{}
			sums[k] = acc
			keys = append(keys, k)
		}
		acc.Add(r.TotalPrice)
	}

	slices.SortStableFunc(keys, func(a, b key) int {
		if c := cmp.Compare(a.month, b.month); c != 0 {
			return c
		}
		return compareKeys(a.division, b.division)
	})

	out := make([]models.MonthlyDivisionRevenue, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.MonthlyDivisionRevenue{Month: k.month, Division: k.division, Revenue: sums[k].Float64()})
	}
	return out
}

// WeekdayRevenue returns all seven weekdays, Monday first, or nothing when
// no record carries a date.
func WeekdayRevenue(records []models.Record) []models.Revenue {
	var sums [7]money.Accumulator
	dated := false
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		dated = true
		sums[weekdayIndex(r.Date.Weekday())].Add(r.TotalPrice)
	}
	if !dated {
		return []models.Revenue{}
	}

	out := make([]models.Revenue, len(Weekdays))
	for i, day := range Weekdays {
		out[i] = models.Revenue{Key: day, Revenue: sums[i].Float64()}
	}
	return out
}

// HourlyHeatmap is a 7x24 revenue matrix, Monday first.
func HourlyHeatmap(records []models.Record) models.Heatmap {
	var cells [7][24]money.Accumulator
	dated := false
	for _, r := range records {
		if !r.HasDate() {
			continue
		}
		dated = true
		cells[weekdayIndex(r.Date.Weekday())][r.Date.Hour()].Add(r.TotalPrice)
	}
	if !dated {
		return models.Heatmap{Weekdays: []string{}, Hours: []int{}, Values: [][]float64{}}
	}

	hm := models.Heatmap{
		Weekdays: slices.Clone(Weekdays),
		Hours:    make([]int, 24),
		Values:   make([][]float64, 7),
	}
	for h := range hm.Hours {
		hm.Hours[h] = h
	}
	for d := range cells {
		row := make([]float64, len(cells[d]))
		for h := range cells[d] {
			row[h] = cells[d][h].Float64()
		}
		hm.Values[d] = row
	}
	return hm
}

func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func TopCategories(records []models.Record, limit int) []models.Revenue {
	g := newGroups[revenueSum]()
	for _, r := range records {
		if !r.ItemFound || r.MainCategory == "" {
			continue
		}
		g.get(r.MainCategory).add(r)
	}
	return topRevenue(g, limit)
}

func TopCountries(records []models.Record, limit int) []models.CountryPerformance {
	g := newGroups[revenueSum]()
	for _, r := range records {
		if !r.ItemFound || r.Country == "" {
			continue
		}
		g.get(r.Country).add(r)
	}

	out := make([]models.CountryPerformance, 0, len(g.keys))
	for _, rev := range topRevenue(g, limit) {
		out = append(out, models.CountryPerformance{
			Country:  rev.Key,
			Revenue:  rev.Revenue,
			Quantity: g.values[rev.Key].quantity,
		})
	}
	return out
}

func PaymentBreakdown(records []models.Record) []models.PaymentStats {
	g := newGroups[revenueSum]()
	for _, r := range records {
		if !r.PaymentFound {
			continue
		}
		g.get(r.PaymentType).add(r)
	}

	out := make([]models.PaymentStats, 0, len(g.keys))
	for _, k := range g.sortedKeys() {
		v := g.values[k]
		revenue := v.revenue.Float64()
		out = append(out, models.PaymentStats{
			Type:         k,
			Revenue:      money.Round(revenue, 2),
			Transactions: v.count,
			Average:      money.Round(revenue/float64(v.count), 2),
		})
	}
	return out
}

// TopBanks ranks banks by revenue over card transactions, ignoring records
// without a bank name.
func TopBanks(records []models.Record, limit int) []models.Revenue {
	g := newGroups[revenueSum]()
	for _, r := range records {
		if r.PaymentType != cardPayment || r.BankName == nil {
			continue
		}
		g.get(*r.BankName).add(r)
	}
	return topRevenue(g, limit)
}
