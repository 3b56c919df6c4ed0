package transaction

import (
	"testing"
	"time"

	"github.com/hance08/hb/internal/apperr"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFlagsInput(t *testing.T) {
	f := &MoneyFlags{CurrencyAmount: "12.5", Currency: "usd", ExchangeRate: "1.35"}

	in, err := f.Input()
	require.NoError(t, err)
	assert.False(t, in.Amount.Valid)
	assert.Equal(t, "USD", in.Currency)
	assert.True(t, decimal.RequireFromString("12.5").Equal(in.CurrencyAmount.Decimal))
	assert.True(t, decimal.RequireFromString("1.35").Equal(in.ExchangeRate.Decimal))
}

func TestMoneyFlagsRejectsBadValues(t *testing.T) {
	for _, f := range []*MoneyFlags{
		{Amount: "-3"},
		{Amount: "abc"},
		{CurrencyAmount: "0"},
		{Currency: "DOLLAR"},
	} {
		_, err := f.Input()
		assert.Equal(t, apperr.KindValidation, apperr.Kind(err), "%+v", f)
	}
}

func TestListFlagsFilter(t *testing.T) {
	f := &ListFlags{Start: "2026-01-01", End: "2026-01-31", Account: " Wallet ", Limit: 5}

	filter, err := f.Filter()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), filter.Start)
	assert.Equal(t, "Wallet", filter.Account)
	assert.Equal(t, 5, filter.Limit)

	f.End = "2025-12-31"
	_, err = f.Filter()
	assert.Error(t, err)
}

func TestParseKey(t *testing.T) {
	key, err := ParseKey("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), key)

	for _, arg := range []string{"0", "-1", "abc"} {
		_, err := ParseKey(arg)
		assert.Error(t, err, arg)
	}
}

func TestChanged(t *testing.T) {
	var notes, date string
	cmd := &cobra.Command{Use: "update"}
	cmd.Flags().StringVar(&notes, "notes", "", "")
	cmd.Flags().StringVar(&date, "date", "", "")

	assert.Nil(t, Changed(cmd, "notes", notes))

	require.NoError(t, cmd.Flags().Set("notes", ""))
	require.NoError(t, cmd.Flags().Set("date", "2026-02-01"))

	got := Changed(cmd, "notes", notes)
	require.NotNil(t, got)
	assert.Equal(t, "", *got)

	d, err := ChangedDate(cmd, "date", date)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", d.Format("2006-01-02"))
}
