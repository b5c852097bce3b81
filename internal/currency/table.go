// Package currency converts and formats monetary amounts using a static
// base-currency rate table. All conversions are a two-hop path through the
// base currency; no direct cross-rate table exists.
package currency

import "github.com/shopspring/decimal"

// Base is the currency all exchange rates are expressed against.
const Base = "USD"

// Table maps currency codes to their rate against the base currency.
// Immutable after construction and safe for concurrent use.
type Table struct {
	rates map[string]decimal.Decimal
}

// NewTable builds a table from code -> rate-to-base. The base currency is
// always present with rate 1.0.
func NewTable(rates map[string]decimal.Decimal) *Table {
	t := &Table{rates: make(map[string]decimal.Decimal, len(rates)+1)}
	for code, rate := range rates {
		t.rates[code] = rate
	}
	t.rates[Base] = decimal.NewFromInt(1)
	return t
}

// DefaultTable returns the static rate snapshot shipped with the engine.
// In production these would come from a rate provider; the engine only
// requires that the table is loaded once per process.
func DefaultTable() *Table {
	return NewTable(map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.93"),
		"GBP": decimal.RequireFromString("0.80"),
		"JPY": decimal.RequireFromString("151.64"),
		"CAD": decimal.RequireFromString("1.37"),
		"AUD": decimal.RequireFromString("1.52"),
		"CHF": decimal.RequireFromString("0.90"),
		"CNY": decimal.RequireFromString("7.24"),
		"INR": decimal.RequireFromString("83.35"),
		"RUB": decimal.RequireFromString("91.32"),
		"BRL": decimal.RequireFromString("5.14"),
		"ZAR": decimal.RequireFromString("18.38"),
		"MXN": decimal.RequireFromString("17.07"),
	})
}

// Known reports whether the table carries a rate for code. Convert does not
// fail on unknown codes; callers that want to surface missing rates check
// here first.
func (t *Table) Known(code string) bool {
	_, ok := t.rates[code]
	return ok
}

// Rate returns the rate-to-base for code, defaulting to 1.0 when the code
// is absent so that unknown currencies degrade to base-currency parity.
func (t *Table) Rate(code string) decimal.Decimal {
	if rate, ok := t.rates[code]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

// Convert converts amount between two currency codes through the base
// currency. Same-currency conversions are a no-op.
func (t *Table) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	if from == to || amount.IsZero() {
		return amount
	}

	inBase := amount
	if from != Base {
		inBase = amount.Div(t.Rate(from))
	}
	if to == Base {
		return inBase
	}
	return inBase.Mul(t.Rate(to))
}
