// Package currency resolves the dual-currency amounts stored on every
// transaction row.
package currency

import (
	"context"
	"strings"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/model"
	"github.com/shopspring/decimal"
)

// RateProvider returns the value of one unit of code in the base currency.
// It must return 1 rather than fail when the rate is unknown.
type RateProvider interface {
	Rate(ctx context.Context, code string) decimal.Decimal
}

type Engine struct {
	base  string
	rates RateProvider
}

func NewEngine(base string, rates RateProvider) *Engine {
	return &Engine{base: strings.ToUpper(base), rates: rates}
}

func (e *Engine) Base() string {
	return e.base
}

// Normalize resolves an expense or income amount against the owning
// account's currency. The result satisfies Amount = CurrencyAmount x ExchangeRate
// before rounding.
func (e *Engine) Normalize(ctx context.Context, accountCurrency string, in model.MoneyInput) (model.Money, error) {
	if err := validateInput(in); err != nil {
		return model.Money{}, err
	}

	if !in.Amount.Valid && !in.CurrencyAmount.Valid {
		return model.Money{}, apperr.Validation("amount", "an amount or currency amount is required")
	}

	accountCurrency = strings.ToUpper(accountCurrency)
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if cur == "" {
		cur = accountCurrency
	}
	if cur == e.base && accountCurrency != e.base {
		return model.Money{}, apperr.CurrencyConstraint(cur, accountCurrency,
			"base currency %s cannot be posted to %s account", cur, accountCurrency)
	}

	if cur == e.base {
		amount := in.Amount.Decimal
		if !in.Amount.Valid {
			amount = in.CurrencyAmount.Decimal
		}
		if in.Amount.Valid && in.CurrencyAmount.Valid && !in.Amount.Decimal.Equal(in.CurrencyAmount.Decimal) {
			return model.Money{}, apperr.Validation("currency_amount",
				"must equal amount (%s) for base currency %s", in.Amount.Decimal, cur)
		}
		if in.ExchangeRate.Valid && !in.ExchangeRate.Decimal.Equal(decimal.NewFromInt(1)) {
			return model.Money{}, apperr.Validation("exchange_rate", "must be 1 for base currency %s", cur)
		}
		amount = Round(amount, cur)
		return model.Money{
			Amount:         amount,
			Currency:       cur,
			CurrencyAmount: amount,
			ExchangeRate:   decimal.NewFromInt(1),
		}, nil
	}

	if in.Amount.Valid && in.CurrencyAmount.Valid {
		return model.Money{}, apperr.Validation("amount",
			"amount and currency amount cannot both be given for %s", cur)
	}
	currencyAmount := in.CurrencyAmount.Decimal
	if !in.CurrencyAmount.Valid {
		currencyAmount = in.Amount.Decimal
	}

	rate := in.ExchangeRate.Decimal
	if !in.ExchangeRate.Valid {
		rate = e.rate(ctx, cur)
	}

	return model.Money{
		Amount:         Round(currencyAmount.Mul(rate), e.base),
		Currency:       cur,
		CurrencyAmount: Round(currencyAmount, cur),
		ExchangeRate:   rate,
	}, nil
}

// NormalizeTransfer resolves a transfer into its stored form: Currency is
// always the sending account's currency, CurrencyAmount the sending side
// and Amount the receiving side. ExchangeRate is receiving units per
// sending unit.
func (e *Engine) NormalizeTransfer(ctx context.Context, fromCurrency, toCurrency string, in model.MoneyInput) (model.Money, error) {
	if err := validateInput(in); err != nil {
		return model.Money{}, err
	}

	from := strings.ToUpper(fromCurrency)
	to := strings.ToUpper(toCurrency)
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))

	if cur != "" && cur != from && cur != to {
		return model.Money{}, apperr.CurrencyConstraint(cur, from,
			"transfer currency %s must be %s or %s", cur, from, to)
	}
	if in.Amount.Valid && in.CurrencyAmount.Valid && !in.ExchangeRate.Valid {
		return model.Money{}, apperr.Validation("amount",
			"amount and currency amount cannot both be given without an exchange rate")
	}
	if !in.Amount.Valid && !in.CurrencyAmount.Valid {
		return model.Money{}, apperr.Validation("amount", "an amount or currency amount is required")
	}

	factor := e.factor(ctx, from, to, in.ExchangeRate)

	var sending, receiving decimal.Decimal
	switch {
	case in.CurrencyAmount.Valid || cur != "":
		given := in.CurrencyAmount.Decimal
		if !in.CurrencyAmount.Valid {
			given = in.Amount.Decimal
		}
		if cur == "" || cur == from {
			sending = given
			receiving = given.Mul(factor)
		} else {
			receiving = given
			sending = given.Div(factor)
		}
	case from == to:
		sending = in.Amount.Decimal
		receiving = in.Amount.Decimal
	case to == e.base && from != e.base:
		receiving = in.Amount.Decimal
		sending = receiving.Div(factor)
	default:
		// Base on the sending side, or no base side at all: the amount is
		// in the sending account's currency.
		sending = in.Amount.Decimal
		receiving = sending.Mul(factor)
	}

	result := model.Money{
		Amount:         Round(receiving, to),
		Currency:       from,
		CurrencyAmount: Round(sending, from),
		ExchangeRate:   factor,
	}

	if in.Amount.Valid && in.CurrencyAmount.Valid {
		if !Round(in.Amount.Decimal, to).Equal(result.Amount) {
			return model.Money{}, apperr.Validation("amount",
				"amount %s does not match %s x %s = %s", in.Amount.Decimal, in.CurrencyAmount.Decimal, factor, result.Amount)
		}
	}
	return result, nil
}

// factor converts one unit of from into to.
func (e *Engine) factor(ctx context.Context, from, to string, explicit decimal.NullDecimal) decimal.Decimal {
	if explicit.Valid {
		return explicit.Decimal
	}
	if from == to {
		return decimal.NewFromInt(1)
	}
	return e.rate(ctx, from).Div(e.rate(ctx, to))
}

func (e *Engine) rate(ctx context.Context, code string) decimal.Decimal {
	if code == e.base || e.rates == nil {
		return decimal.NewFromInt(1)
	}
	r := e.rates.Rate(ctx, code)
	if !r.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return r
}

func validateInput(in model.MoneyInput) error {
	if in.Amount.Valid && !in.Amount.Decimal.IsPositive() {
		return apperr.Validation("amount", "must be greater than zero")
	}
	if in.CurrencyAmount.Valid && !in.CurrencyAmount.Decimal.IsPositive() {
		return apperr.Validation("currency_amount", "must be greater than zero")
	}
	if in.ExchangeRate.Valid && !in.ExchangeRate.Decimal.IsPositive() {
		return apperr.Validation("exchange_rate", "must be greater than zero")
	}
	if in.Currency != "" && !ValidCode(strings.ToUpper(strings.TrimSpace(in.Currency))) {
		return apperr.Validation("currency", "%q is not a three-letter currency code", in.Currency)
	}
	return nil
}
