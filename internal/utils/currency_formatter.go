package utils

import (
	"fmt"
	"strings"

	"github.com/hance08/hb/internal/currency"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with its code, e.g. "25.50 AUD" or
// "1200 JPY".
func FormatMoney(d decimal.Decimal, code string) string {
	return fmt.Sprintf("%s %s", currency.FormatAmount(d, code), strings.ToUpper(code))
}

// FormatRate trims trailing zeros from an exchange rate.
func FormatRate(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
