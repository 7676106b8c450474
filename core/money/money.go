// Package money provides currency metadata and price formatting.
package money

import (
	"github.com/shopspring/decimal"
)

// Currency represents an ISO currency code
type Currency string

const (
	GBP Currency = "GBP"
	USD Currency = "USD"
	EUR Currency = "EUR"
	AUD Currency = "AUD"
	NZD Currency = "NZD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// symbols maps currency codes to their display symbols
var symbols = map[Currency]string{
	GBP: "£",
	USD: "$",
	EUR: "€",
	AUD: "$",
	NZD: "$",
}

// Symbol returns the display symbol for a currency.
// Unknown currencies fall back to the code itself followed by a space.
func Symbol(c Currency) string {
	if s, ok := symbols[c]; ok {
		return s
	}
	return string(c) + " "
}

// Format renders an amount with a currency symbol and two decimal places
func Format(amount decimal.Decimal, symbol string) string {
	if amount.IsNegative() {
		return "-" + symbol + amount.Neg().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}
