package analytics

import (
	"time"

	"commerce-dashboard/internal/models"
)

// DayLayout is the format of filter date bounds.
const DayLayout = "2006-01-02"

// ParseDay parses a filter bound. An empty string yields the zero time,
// which is an open bound.
func ParseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(DayLayout, value)
}

// Filter narrows the unified records. Date bounds are inclusive calendar
// days and a zero bound is open. Empty Divisions or PaymentMethods mean
// no restriction.
type Filter struct {
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	Divisions      []string  `json:"divisions"`
	PaymentMethods []string  `json:"payment_methods"`
}

func (f Filter) hasDateRange() bool {
	return !f.From.IsZero() || !f.To.IsZero()
}

// IsEmpty reports whether the filter lets every record through.
func (f Filter) IsEmpty() bool {
	return !f.hasDateRange() && len(f.Divisions) == 0 && len(f.PaymentMethods) == 0
}

// Apply returns the records matching f in their original order. Records
// without a date never match a date range.
func Apply(records []models.Record, f Filter) []models.Record {
	if f.IsEmpty() {
		return records
	}

	divisions := toSet(f.Divisions)
	payments := toSet(f.PaymentMethods)
	from, to := calendarDay(f.From), calendarDay(f.To)

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if f.hasDateRange() {
			if !r.HasDate() {
				continue
			}
			day := calendarDay(*r.Date)
			if !f.From.IsZero() && day.Before(from) {
				continue
			}
			if !f.To.IsZero() && day.After(to) {
				continue
			}
		}
		if divisions != nil && (!r.StoreFound || !divisions[r.Division]) {
			continue
		}
		if payments != nil && (!r.PaymentFound || !payments[r.PaymentType]) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func calendarDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
