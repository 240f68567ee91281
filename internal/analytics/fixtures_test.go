package analytics

import (
	"time"

	"commerce-dashboard/internal/models"
)

type recordOpt func(*models.Record)

func at(y int, m time.Month, d, hour int) recordOpt {
	return func(r *models.Record) {
		t := time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
		r.TimeFound = true
		r.Date = &t
	}
}

func in(division, district string) recordOpt {
	return func(r *models.Record) {
		r.StoreFound = true
		r.Division = division
		r.District = district
	}
}

func paid(method string) recordOpt {
	return func(r *models.Record) {
		r.PaymentFound = true
		r.PaymentType = method
	}
}

func bank(name string) recordOpt {
	return func(r *models.Record) { r.BankName = &name }
}

func item(key, category, country string) recordOpt {
	return func(r *models.Record) {
		r.ItemKey = key
		r.ItemFound = true
		r.MainCategory = category
		r.Country = country
	}
}

func quarter(q string) recordOpt {
	return func(r *models.Record) {
		r.TimeFound = true
		r.Quarter = q
	}
}

func rec(customer string, total float64, opts ...recordOpt) models.Record {
	r := models.Record{Fact: models.Fact{
		CustomerKey: customer,
		ItemKey:     "I-" + customer,
		Quantity:    1,
		UnitPrice:   total,
		TotalPrice:  total,
	}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
