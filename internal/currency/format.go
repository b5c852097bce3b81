package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "C$",
	"AUD": "A$",
	"CHF": "Fr",
	"CNY": "¥",
	"INR": "₹",
	"RUB": "₽",
	"BRL": "R$",
	"ZAR": "R",
	"MXN": "$",
}

// Currencies conventionally displayed without cents.
var zeroDecimal = map[string]bool{
	"JPY": true,
}

var printer = message.NewPrinter(language.English)

// Symbol returns the display symbol for a currency code, or the code's
// empty-string fallback when none is known.
func Symbol(code string) string {
	return symbols[code]
}

// Precision returns the number of fraction digits conventionally shown
// for a currency: 0 for JPY-style currencies, 2 otherwise.
func Precision(code string) int {
	if zeroDecimal[code] {
		return 0
	}
	return 2
}

// Format renders an amount with locale-aware digit grouping and the
// currency symbol prefixed, e.g. Format(1234.5, "USD") -> "$1,234.50".
// Negative amounts carry the sign before the symbol.
func Format(amount decimal.Decimal, code string) string {
	prec := Precision(code)
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	v := amount.Round(int32(prec)).InexactFloat64()
	s := printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(prec),
		number.MaxFractionDigits(prec),
	))

	out := Symbol(code) + s
	if neg {
		return "-" + out
	}
	return out
}
