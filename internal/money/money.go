// Package money sums and formats currency amounts.
//
// Revenue totals are accumulated as apd decimals so the result does not
// depend on floating point summation error across hundreds of thousands
// of rows.
package money

import (
	"github.com/cockroachdb/apd/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var sumContext = apd.BaseContext.WithPrecision(34)

// Accumulator is a running decimal sum. The zero value is ready to use.
type Accumulator struct {
	total apd.Decimal
}

func (a *Accumulator) Add(amount float64) {
	var d apd.Decimal
	if _, err := d.SetFloat64(amount); err != nil {
		return
	}
	sumContext.Add(&a.total, &a.total, &d)
}

func (a *Accumulator) Float64() float64 {
	f, err := a.total.Float64()
	if err != nil {
		return 0
	}
	return f
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int32) float64 {
	var d, out apd.Decimal
	if _, err := d.SetFloat64(v); err != nil {
		return v
	}
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Rounding = apd.RoundHalfUp
	if _, err := ctx.Quantize(&out, &d, -places); err != nil {
		return v
	}
	f, err := out.Float64()
	if err != nil {
		return v
	}
	return f
}

// Format renders v as "$1,234" with the given number of decimals.
func Format(v float64, decimals int) string {
	return "$" + Grouped(v, decimals)
}

// Grouped renders v with English thousands separators after rounding half
// up to decimals places.
func Grouped(v float64, decimals int) string {
	p := message.NewPrinter(language.English)
	return p.Sprint(number.Decimal(Round(v, int32(decimals)), number.Scale(decimals)))
}
