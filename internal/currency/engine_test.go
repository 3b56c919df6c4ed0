package currency

import (
	"context"
	"testing"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRates map[string]decimal.Decimal

func (f fakeRates) Rate(_ context.Context, code string) decimal.Decimal {
	if r, ok := f[code]; ok {
		return r
	}
	return decimal.NewFromInt(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func some(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func newEngine() *Engine {
	return NewEngine("AUD", fakeRates{
		"USD": dec("1.35"),
		"EUR": dec("1.62"),
		"JPY": dec("0.0098"),
	})
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestNormalizeBaseAmountOnly(t *testing.T) {
	got, err := newEngine().Normalize(context.Background(), "AUD", model.MoneyInput{Amount: some("25.50")})
	require.NoError(t, err)

	assertDecimal(t, "25.50", got.Amount)
	assertDecimal(t, "25.50", got.CurrencyAmount)
	assertDecimal(t, "1", got.ExchangeRate)
	assert.Equal(t, "AUD", got.Currency)
}

func TestNormalizeForeignOnBaseAccount(t *testing.T) {
	got, err := newEngine().Normalize(context.Background(), "AUD", model.MoneyInput{
		Currency:       "usd",
		CurrencyAmount: some("10"),
		ExchangeRate:   some("1.5"),
	})
	require.NoError(t, err)

	assert.Equal(t, "USD", got.Currency)
	assertDecimal(t, "15", got.Amount)
	assertDecimal(t, "10", got.CurrencyAmount)
	assertDecimal(t, "1.5", got.ExchangeRate)
}

func TestNormalizeForeignUsesProviderRate(t *testing.T) {
	got, err := newEngine().Normalize(context.Background(), "AUD", model.MoneyInput{
		Currency:       "EUR",
		CurrencyAmount: some("20.00"),
	})
	require.NoError(t, err)
	assertDecimal(t, "32.40", got.Amount)
}

func TestNormalizeNonBaseAccountAmountOnly(t *testing.T) {
	got, err := newEngine().Normalize(context.Background(), "USD", model.MoneyInput{Amount: some("100")})
	require.NoError(t, err)

	assert.Equal(t, "USD", got.Currency)
	assertDecimal(t, "100", got.CurrencyAmount)
	assertDecimal(t, "135", got.Amount)
	assertDecimal(t, "1.35", got.ExchangeRate)
}

func TestNormalizeZeroDecimalCurrency(t *testing.T) {
	got, err := newEngine().Normalize(context.Background(), "JPY", model.MoneyInput{Amount: some("1234.6")})
	require.NoError(t, err)

	assertDecimal(t, "1235", got.CurrencyAmount)
	assert.Equal(t, "1235", FormatAmount(got.CurrencyAmount, got.Currency))
	assertDecimal(t, "12.10", got.Amount)
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		account string
		in      model.MoneyInput
		kind    string
	}{
		{"nothing", "AUD", model.MoneyInput{}, apperr.KindValidation},
		{"negative", "AUD", model.MoneyInput{Amount: some("-1")}, apperr.KindValidation},
		{"zero rate", "AUD", model.MoneyInput{Currency: "USD", CurrencyAmount: some("1"), ExchangeRate: some("0")}, apperr.KindValidation},
		{"bad code", "AUD", model.MoneyInput{Currency: "US", Amount: some("1")}, apperr.KindValidation},
		{"base amounts differ", "AUD", model.MoneyInput{Amount: some("10"), CurrencyAmount: some("11")}, apperr.KindValidation},
		{"foreign both amounts", "AUD", model.MoneyInput{Currency: "USD", Amount: some("10"), CurrencyAmount: some("7")}, apperr.KindValidation},
		{"base on foreign account", "USD", model.MoneyInput{Currency: "AUD", Amount: some("10")}, apperr.KindCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newEngine().Normalize(context.Background(), tt.account, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.Kind(err))
		})
	}
}

func TestNormalizeBaseAmountsEqual(t *testing.T) {
	got, err := newEngine().Normalize(context.Background(), "AUD", model.MoneyInput{
		Amount:         some("12.00"),
		CurrencyAmount: some("12"),
	})
	require.NoError(t, err)
	assertDecimal(t, "12", got.Amount)
}

func TestTransferAmountOnlyFromBase(t *testing.T) {
	got, err := newEngine().NormalizeTransfer(context.Background(), "AUD", "USD", model.MoneyInput{
		Amount:       some("200.00"),
		ExchangeRate: some("0.74"),
	})
	require.NoError(t, err)

	assert.Equal(t, "AUD", got.Currency)
	assertDecimal(t, "200.00", got.CurrencyAmount)
	assertDecimal(t, "148.00", got.Amount)
}

func TestTransferAmountOnlyProviderRate(t *testing.T) {
	got, err := newEngine().NormalizeTransfer(context.Background(), "AUD", "USD", model.MoneyInput{Amount: some("200")})
	require.NoError(t, err)

	assertDecimal(t, "200", got.CurrencyAmount)
	assertDecimal(t, "148.15", got.Amount)
}

func TestTransferAmountOnlyToBase(t *testing.T) {
	got, err := newEngine().NormalizeTransfer(context.Background(), "USD", "AUD", model.MoneyInput{Amount: some("135")})
	require.NoError(t, err)

	assert.Equal(t, "USD", got.Currency)
	assertDecimal(t, "100", got.CurrencyAmount)
	assertDecimal(t, "135", got.Amount)
}

func TestTransferAmountOnlyNoBase(t *testing.T) {
	got, err := newEngine().NormalizeTransfer(context.Background(), "USD", "EUR", model.MoneyInput{Amount: some("100")})
	require.NoError(t, err)

	assert.Equal(t, "USD", got.Currency)
	assertDecimal(t, "100", got.CurrencyAmount)
	assertDecimal(t, "83.33", got.Amount)
}

func TestTransferSameCurrency(t *testing.T) {
	got, err := newEngine().NormalizeTransfer(context.Background(), "AUD", "AUD", model.MoneyInput{Amount: some("50")})
	require.NoError(t, err)

	assertDecimal(t, "50", got.CurrencyAmount)
	assertDecimal(t, "50", got.Amount)
	assertDecimal(t, "1", got.ExchangeRate)
}

func TestTransferExplicitSendingCurrency(t *testing.T) {
	got, err := newEngine().NormalizeTransfer(context.Background(), "AUD", "USD", model.MoneyInput{
		Currency:       "AUD",
		CurrencyAmount: some("80"),
		ExchangeRate:   some("0.74"),
	})
	require.NoError(t, err)

	assertDecimal(t, "80", got.CurrencyAmount)
	assertDecimal(t, "59.20", got.Amount)
}

func TestTransferExplicitReceivingCurrency(t *testing.T) {
	got, err := newEngine().NormalizeTransfer(context.Background(), "AUD", "USD", model.MoneyInput{
		Currency:       "USD",
		CurrencyAmount: some("100.00"),
		ExchangeRate:   some("0.74"),
	})
	require.NoError(t, err)

	assert.Equal(t, "AUD", got.Currency)
	assertDecimal(t, "135.14", got.CurrencyAmount)
	assertDecimal(t, "100.00", got.Amount)
}

func TestTransferInverseLaw(t *testing.T) {
	e := newEngine()
	inputs := []struct {
		from, to, amount, rate string
	}{
		{"AUD", "USD", "100.00", "0.74"},
		{"AUD", "USD", "19.99", "0.7391"},
		{"USD", "EUR", "250.10", "0.92"},
		{"EUR", "AUD", "3.33", "1.6234"},
	}
	for _, in := range inputs {
		t.Run(in.from+in.to+in.amount, func(t *testing.T) {
			got, err := e.NormalizeTransfer(context.Background(), in.from, in.to, model.MoneyInput{
				Currency:       in.to,
				CurrencyAmount: some(in.amount),
				ExchangeRate:   some(in.rate),
			})
			require.NoError(t, err)

			rederived := got.CurrencyAmount.Mul(dec(in.rate))
			diff := rederived.Sub(dec(in.amount)).Abs()
			assert.True(t, diff.LessThanOrEqual(dec("0.01")), "re-derived %s from %s", rederived, got.CurrencyAmount)
		})
	}
}

func TestTransferErrors(t *testing.T) {
	tests := []struct {
		name string
		in   model.MoneyInput
		kind string
	}{
		{"third currency", model.MoneyInput{Currency: "EUR", CurrencyAmount: some("10")}, apperr.KindCurrency},
		{"both amounts without rate", model.MoneyInput{Amount: some("10"), CurrencyAmount: some("7")}, apperr.KindValidation},
		{"both amounts disagree", model.MoneyInput{Amount: some("10"), CurrencyAmount: some("7"), ExchangeRate: some("0.74")}, apperr.KindValidation},
		{"zero", model.MoneyInput{Amount: some("0")}, apperr.KindValidation},
		{"missing", model.MoneyInput{Currency: "AUD"}, apperr.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newEngine().NormalizeTransfer(context.Background(), "AUD", "USD", tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.Kind(err))
		})
	}
}

func TestTransferBothAmountsConsistent(t *testing.T) {
	got, err := newEngine().NormalizeTransfer(context.Background(), "AUD", "USD", model.MoneyInput{
		Amount:         some("74"),
		CurrencyAmount: some("100"),
		ExchangeRate:   some("0.74"),
	})
	require.NoError(t, err)
	assertDecimal(t, "74", got.Amount)
	assertDecimal(t, "100", got.CurrencyAmount)
}

func TestPlaces(t *testing.T) {
	assert.Equal(t, int32(2), Places("AUD"))
	assert.Equal(t, int32(0), Places("jpy"))
	assert.Equal(t, int32(2), Places("ZZZ"))
	assert.Equal(t, "25.50", FormatAmount(dec("25.5"), "AUD"))
}
