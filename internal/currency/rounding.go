package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Places is the number of decimals stored for code: 0 for currencies
// without a minor unit, 2 otherwise.
func Places(code string) int32 {
	c := money.GetCurrency(strings.ToUpper(code))
	if c != nil && c.Fraction == 0 {
		return 0
	}
	return 2
}

func Round(d decimal.Decimal, code string) decimal.Decimal {
	return d.Round(Places(code))
}

// FormatAmount renders d the way the companion schema stores text
// amounts, e.g. "25.50" or "1200".
func FormatAmount(d decimal.Decimal, code string) string {
	return d.StringFixed(Places(code))
}

// Display renders d with the currency's symbol and grouping for terminal
// output.
func Display(d decimal.Decimal, code string) string {
	places := Places(code)
	minor := d.Shift(places).Round(0).IntPart()
	return money.New(minor, strings.ToUpper(code)).Display()
}

// ValidCode reports whether code is a three-letter upper-case code.
func ValidCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
