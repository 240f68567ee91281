package dataset

import (
	"fmt"
	"math"
	"strconv"

	"commerce-dashboard/internal/models"
)

// Source column names. The customer key keeps the upstream spelling.
const (
	colCustomerKey = "coustomer_key"
	colItemKey     = "item_key"
	colStoreKey    = "store_key"
	colTimeKey     = "time_key"
	colPaymentKey  = "payment_key"
	colQuantity    = "quantity"
	colUnitPrice   = "unit_price"
	colTotalPrice  = "total_price"

	colName     = "name"
	colItemName = "item_name"
	colDesc     = "desc"
	colCountry  = "man_country"
	colSupplier = "supplier"

	colDivision = "division"
	colDistrict = "district"
	colUpazila  = "upazila"

	colDate    = "date"
	colYear    = "year"
	colMonth   = "month"
	colQuarter = "quarter"

	colTransType = "trans_type"
	colBankName  = "bank_name"
)

var requiredColumns = map[string][]string{
	TableFact:        {colCustomerKey, colItemKey, colStoreKey, colTimeKey, colPaymentKey, colQuantity, colUnitPrice, colTotalPrice},
	TableCustomer:    {colCustomerKey, colName},
	TableItem:        {colItemKey, colItemName, colDesc, colCountry, colSupplier},
	TableStore:       {colStoreKey, colDivision, colDistrict},
	TableTime:        {colTimeKey, colDate, colMonth, colQuarter, colYear},
	TableTransaction: {colPaymentKey, colTransType, colBankName},
}

// Unify left-joins the fact table with every dimension and derives the
// computed columns. Fact rows are never dropped; unmatched dimensions leave
// their fields empty. Any schema problem aborts the whole join.
func Unify(t Tables) ([]models.Record, error) {
	for _, table := range []*Table{t.Fact, t.Customer, t.Item, t.Store, t.Time, t.Transaction} {
		if table == nil {
			return nil, fmt.Errorf("unify: table not loaded")
		}
		if err := table.Require(requiredColumns[table.Name]...); err != nil {
			return nil, err
		}
	}

	customers, err := indexRows(t.Customer, colCustomerKey, func(row []string) models.Customer {
		return models.Customer{
			Key:  t.Customer.Value(row, colCustomerKey),
			Name: t.Customer.Value(row, colName),
		}
	})
	if err != nil {
		return nil, err
	}

	items, err := indexRows(t.Item, colItemKey, func(row []string) models.Item {
		desc := t.Item.Raw(row, colDesc)
		return models.Item{
			Key:          t.Item.Value(row, colItemKey),
			Name:         t.Item.Value(row, colItemName),
			Description:  desc,
			MainCategory: MainCategory(desc),
			Country:      t.Item.Value(row, colCountry),
			Supplier:     t.Item.Value(row, colSupplier),
		}
	})
	if err != nil {
		return nil, err
	}

	stores, err := indexRows(t.Store, colStoreKey, func(row []string) models.Store {
		return models.Store{
			Key:      t.Store.Value(row, colStoreKey),
			Division: t.Store.Value(row, colDivision),
			District: t.Store.Value(row, colDistrict),
			Upazila:  t.Store.Value(row, colUpazila),
		}
	})
	if err != nil {
		return nil, err
	}

	slots, err := indexRows(t.Time, colTimeKey, func(row []string) models.TimeSlot {
		return models.TimeSlot{
			Key:     t.Time.Value(row, colTimeKey),
			Date:    ParseDate(t.Time.Raw(row, colDate)),
			Year:    t.Time.Value(row, colYear),
			Month:   t.Time.Value(row, colMonth),
			Quarter: t.Time.Value(row, colQuarter),
		}
	})
	if err != nil {
		return nil, err
	}

	payments, err := indexRows(t.Transaction, colPaymentKey, func(row []string) models.Payment {
		return models.Payment{
			Key:      t.Transaction.Value(row, colPaymentKey),
			Type:     t.Transaction.Value(row, colTransType),
			BankName: bankName(t.Transaction.Value(row, colBankName)),
		}
	})
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, t.Fact.Len())
	for i, row := range t.Fact.Rows {
		fact, err := parseFact(t.Fact, row, i+1)
		if err != nil {
			return nil, err
		}

		rec := models.Record{Fact: fact}
		if c, ok := customers[fact.CustomerKey]; ok {
			rec.CustomerFound = true
			rec.CustomerName = c.Name
		}
		if it, ok := items[fact.ItemKey]; ok {
			rec.ItemFound = true
			rec.ItemName = it.Name
			rec.MainCategory = it.MainCategory
			rec.Country = it.Country
			rec.Supplier = it.Supplier
		}
		if s, ok := stores[fact.StoreKey]; ok {
			rec.StoreFound = true
			rec.Division = s.Division
			rec.District = s.District
			rec.Upazila = s.Upazila
		}
		if ts, ok := slots[fact.TimeKey]; ok {
			rec.TimeFound = true
			rec.Year = ts.Year
			rec.Month = ts.Month
			rec.Quarter = ts.Quarter
			if ts.Date != nil {
				date := *ts.Date
				rec.Date = &date
			}
		}
		if p, ok := payments[fact.PaymentKey]; ok {
			rec.PaymentFound = true
			rec.PaymentType = p.Type
			if p.BankName != nil {
				bank := *p.BankName
				rec.BankName = &bank
			}
		}

		derive(&rec)
		records = append(records, rec)
	}

	return records, nil
}

func derive(rec *models.Record) {
	rec.ProfitMargin = ProfitMargin(rec.TotalPrice, rec.UnitPrice)
	if rec.Date != nil {
		rec.MonthName = rec.Date.Month().String()
		rec.Weekday = rec.Date.Weekday().String()
		rec.Hour = rec.Date.Hour()
	}
}

func indexRows[T any](t *Table, keyColumn string, build func([]string) T) (map[string]T, error) {
	index := make(map[string]T, t.Len())
	for i, row := range t.Rows {
		key := t.Value(row, keyColumn)
		if _, dup := index[key]; dup {
			return nil, &SchemaError{
				Table:  t.Name,
				Column: keyColumn,
				Row:    i + 1,
				Reason: fmt.Sprintf("duplicate key %q", key),
			}
		}
		index[key] = build(row)
	}
	return index, nil
}

func parseFact(t *Table, row []string, n int) (models.Fact, error) {
	fact := models.Fact{
		CustomerKey: t.Value(row, colCustomerKey),
		ItemKey:     t.Value(row, colItemKey),
		StoreKey:    t.Value(row, colStoreKey),
		TimeKey:     t.Value(row, colTimeKey),
		PaymentKey:  t.Value(row, colPaymentKey),
	}

	quantity, err := strconv.Atoi(t.Value(row, colQuantity))
	if err != nil {
		return fact, invalidFact(n, colQuantity, "not an integer")
	}
	if quantity <= 0 {
		return fact, invalidFact(n, colQuantity, "must be positive")
	}
	fact.Quantity = quantity

	if fact.UnitPrice, err = parsePrice(t, row, colUnitPrice, n); err != nil {
		return fact, err
	}
	if fact.TotalPrice, err = parsePrice(t, row, colTotalPrice, n); err != nil {
		return fact, err
	}
	return fact, nil
}

func parsePrice(t *Table, row []string, column string, n int) (float64, error) {
	v, err := strconv.ParseFloat(t.Value(row, column), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalidFact(n, column, "not a number")
	}
	if v < 0 {
		return 0, invalidFact(n, column, "must not be negative")
	}
	return v, nil
}

func invalidFact(row int, column, reason string) error {
	return &SchemaError{Table: TableFact, Column: column, Row: row, Reason: reason}
}
