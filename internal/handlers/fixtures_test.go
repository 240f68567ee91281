package handlers

import (
	"io"
	"log/slog"
	"time"

	"commerce-dashboard/internal/models"
	"commerce-dashboard/internal/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func record(customer, division, payment string, day time.Time, total float64) models.Record {
	d := day
	return models.Record{
		Fact: models.Fact{
			CustomerKey: customer,
			ItemKey:     "I" + customer,
			Quantity:    1,
			UnitPrice:   total,
			TotalPrice:  total,
		},
		ItemFound:    true,
		MainCategory: "Food",
		Country:      "Bangladesh",
		StoreFound:   true,
		Division:     division,
		District:     division + " Sadar",
		TimeFound:    true,
		Date:         &d,
		Quarter:      "Q1",
		PaymentFound: true,
		PaymentType:  payment,
		Weekday:      d.Weekday().String(),
		Hour:         d.Hour(),
	}
}

func createTestDashboard() *services.Dashboard {
	records := []models.Record{
		record("C1", "Dhaka", "card", time.Date(2021, 1, 4, 10, 0, 0, 0, time.UTC), 100),
		record("C2", "Sylhet", "cash", time.Date(2021, 2, 9, 14, 0, 0, 0, time.UTC), 50),
		record("C1", "Dhaka", "mobile", time.Date(2021, 3, 15, 18, 0, 0, 0, time.UTC), 25),
	}
	return services.NewDashboard(records, testLogger())
}
