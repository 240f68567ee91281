package dataset

import (
	"strings"
	"time"
)

const (
	categoryDelimiter = " - "
	costRatio         = 0.7
	dateLayout        = "2-1-2006 15:04"
	missingLiteral    = "None"
)

// MainCategory returns the part of an item description before the first
// " - ", or the whole description when there is no delimiter. Both are
// trimmed.
func MainCategory(desc string) string {
	if before, _, found := strings.Cut(desc, categoryDelimiter); found {
		return strings.TrimSpace(before)
	}
	return strings.TrimSpace(desc)
}

// ProfitMargin is (total - unit*0.7) / total * 100, or nil when total is 0.
func ProfitMargin(total, unit float64) *float64 {
	if total == 0 {
		return nil
	}
	margin := (total - unit*costRatio) / total * 100
	return &margin
}

// ParseDate parses a time dimension date of the form "20-05-2017 14:56".
// It returns nil when the value does not parse.
func ParseDate(value string) *time.Time {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &t
}

// bankName maps the upstream null encodings to nil.
func bankName(value string) *string {
	if value == "" || value == missingLiteral {
		return nil
	}
	return &value
}
