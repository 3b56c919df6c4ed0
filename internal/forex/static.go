package forex

import (
	"context"
	"fmt"
	"strings"

	"github.com/hance08/hb/internal/currency"
	"github.com/shopspring/decimal"
)

// Static serves fixed base-currency rates, e.g. from the forex.rates
// config section. Unknown codes fall through to Next, or 1.
type Static struct {
	Rates map[string]decimal.Decimal
	Next  currency.RateProvider
}

// ParseRates converts the string map from configuration.
func ParseRates(raw map[string]string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal, len(raw))
	for code, value := range raw {
		d, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("forex rate for %s: %w", code, err)
		}
		if !d.IsPositive() {
			return nil, fmt.Errorf("forex rate for %s must be positive", code)
		}
		rates[strings.ToUpper(code)] = d
	}
	return rates, nil
}

func (s Static) Rate(ctx context.Context, code string) decimal.Decimal {
	if r, ok := s.Rates[strings.ToUpper(code)]; ok {
		return r
	}
	if s.Next != nil {
		return s.Next.Rate(ctx, code)
	}
	return decimal.NewFromInt(1)
}
