package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountBalance(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.svc.Transaction.AddIncome(ctx, salary())
	require.NoError(t, err)
	_, err = e.svc.Transaction.AddExpense(ctx, coffee())
	require.NoError(t, err)
	_, err = e.svc.Transaction.AddTransfer(ctx, model.TransferInput{
		Date:        day("2026-02-16"),
		FromAccount: "Wallet",
		ToAccount:   "Bank",
		Money:       model.MoneyInput{Amount: amount("200")},
	})
	require.NoError(t, err)

	bal, err := e.svc.Account.Balance(ctx, "Wallet", day("2026-02-28"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", bal.Opening.StringFixed(2))
	assert.Equal(t, "2500.00", bal.Inflows.StringFixed(2))
	assert.Equal(t, "225.50", bal.Outflows.StringFixed(2))
	assert.Equal(t, "2374.50", bal.Balance.StringFixed(2))

	bal, err = e.svc.Account.Balance(ctx, "Wallet", day("2026-02-15"))
	require.NoError(t, err)
	assert.Equal(t, "2600.00", bal.Balance.StringFixed(2))

	bank, err := e.svc.Account.Balance(ctx, "Bank", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "200.00", bank.Balance.StringFixed(2))

	_, err = e.svc.Account.Balance(ctx, "Wallet", day("2025-12-31"))
	assert.Equal(t, apperr.KindValidation, apperr.Kind(err))

	_, err = e.svc.Account.Balance(ctx, "Nowhere", time.Time{})
	assert.Equal(t, apperr.KindNotFound, apperr.Kind(err))
}

func TestReferenceReads(t *testing.T) {
	e := newEnv(t)

	accounts, err := e.svc.Account.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 5)

	categories, err := e.svc.Reference.ListCategories()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Food (Basic)", categories[0].Name)

	subs, err := e.svc.Reference.ListSubCategories("Food (Basic)")
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	currencies, err := e.svc.Reference.ListCurrencies()
	require.NoError(t, err)
	assert.Len(t, currencies, 4)

	base, err := e.svc.Reference.BaseCurrency()
	require.NoError(t, err)
	assert.Equal(t, "AUD", base)
}
