// Package types - Money types
package types

import (
	"github.com/shopspring/decimal"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Symbol returns the display symbol, or the code itself when unknown
func (c Currency) Symbol() string {
	switch c {
	case CurrencyEUR:
		return "€"
	case CurrencyUSD:
		return "$"
	case CurrencyGBP:
		return "£"
	default:
		return string(c) + " "
	}
}

var hundred = decimal.NewFromInt(100)

// Money is an amount in minor units (cents). Tariff prices are fractional,
// so the amount is kept as a real number rather than fixed point.
type Money struct {
	Cents    float64  `json:"cents"`
	Currency Currency `json:"currency"`
}

// NewMoney creates a Money value
func NewMoney(cents float64, currency Currency) Money {
	return Money{Cents: cents, Currency: currency}
}

// Major returns the amount in major units (e.g. euros)
func (m Money) Major() decimal.Decimal {
	return decimal.NewFromFloat(m.Cents).Div(hundred)
}

// String formats the amount with two decimals, e.g. "€1.50"
func (m Money) String() string {
	return m.Currency.Symbol() + m.Major().StringFixedBank(2)
}
