package model

import "github.com/shopspring/decimal"

// CentScale is the number of decimal places carried by monetary amounts.
const CentScale = 2

// Epsilon is the tolerance used when comparing Bilanz totals.
var Epsilon = decimal.New(1, -CentScale)

// HasCentPrecision reports whether d has at most two decimal places.
func HasCentPrecision(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(CentScale))
}

// ParseAmount parses a decimal amount such as "1234.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// SumEntries adds up the amounts of entries.
func SumEntries(entries []AccountEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}
