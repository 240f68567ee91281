package models

import "time"

// Fact is one line of the sales fact table.
type Fact struct {
	CustomerKey string
	ItemKey     string
	StoreKey    string
	TimeKey     string
	PaymentKey  string
	Quantity    int
	UnitPrice   float64
	TotalPrice  float64
}

type Customer struct {
	Key  string
	Name string
}

type Item struct {
	Key          string
	Name         string
	Description  string
	MainCategory string
	Country      string
	Supplier     string
}

type Store struct {
	Key      string
	Division string
	District string
	Upazila  string
}

// TimeSlot is a row of the time dimension. Date is nil when the source
// string could not be parsed.
type TimeSlot struct {
	Key     string
	Date    *time.Time
	Year    string
	Month   string
	Quarter string
}

type Payment struct {
	Key      string
	Type     string
	BankName *string
}

// Record is a fact row joined with every dimension. Dimension fields are
// zero valued and the matching Found flag is false when the fact's key had
// no match.
type Record struct {
	Fact

	CustomerFound bool
	CustomerName  string

	ItemFound    bool
	ItemName     string
	MainCategory string
	Country      string
	Supplier     string

	StoreFound bool
	Division   string
	District   string
	Upazila    string

	TimeFound bool
	Date      *time.Time
	Year      string
	Month     string
	Quarter   string

	PaymentFound bool
	PaymentType  string
	BankName     *string

	ProfitMargin *float64
	MonthName    string
	Weekday      string
	Hour         int
}

// HasDate reports whether the record resolved to a parsed date.
func (r Record) HasDate() bool {
	return r.Date != nil
}
