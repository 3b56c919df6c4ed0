package service_test

import (
	"context"
	"testing"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/syncqueue"
	"github.com/hance08/hb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerEntry struct {
	account   int64
	transType int
	amount    float64
}

func ledgerFor(t *testing.T, e *env, transKey int64) []ledgerEntry {
	t.Helper()
	rows, err := e.fixture.DB.Query(
		"SELECT accountKey, transType, transAmount FROM AccountTrans WHERE transKey = ? AND transType IN (3, 4) ORDER BY transType",
		transKey,
	)
	require.NoError(t, err)
	defer rows.Close()

	var entries []ledgerEntry
	for rows.Next() {
		var le ledgerEntry
		require.NoError(t, rows.Scan(&le.account, &le.transType, &le.amount))
		entries = append(entries, le)
	}
	require.NoError(t, rows.Err())
	return entries
}

func TestAddTransferAmountOnly(t *testing.T) {
	e := newEnv(t)

	tr, err := e.svc.Transaction.AddTransfer(context.Background(), model.TransferInput{
		Date:        day("2026-02-16"),
		FromAccount: "Wallet",
		ToAccount:   "US Account",
		Money:       model.MoneyInput{Amount: amount("200"), ExchangeRate: amount("0.74")},
	})
	require.NoError(t, err)

	assert.Equal(t, "AUD", tr.Currency)
	assert.Equal(t, "200.00", tr.CurrencyAmount.StringFixed(2))
	assert.Equal(t, "148.00", tr.Amount.StringFixed(2))

	assert.Equal(t, []ledgerEntry{
		{account: testutil.AccountWallet, transType: 3, amount: 200},
		{account: testutil.AccountUS, transType: 4, amount: 148},
	}, ledgerFor(t, e, tr.Key))

	p := e.queued(t)[0]
	assert.Equal(t, syncqueue.OpAddTransfer, p.Operation)
	assert.Equal(t, tr.Key, field(t, p, "deviceKey"))
	assert.Equal(t, "148.00", field(t, p, "amount"))
	assert.Equal(t, "200.00", field(t, p, "currencyAmount"))
	assert.Equal(t, "AUD", field(t, p, "currency"))
	assert.Equal(t, int64(7), field(t, p, "fromAccountDeviceKey"))
	assert.Equal(t, testutil.SecondaryDeviceID, field(t, p, "toAccountDeviceId"))
	assert.Equal(t, int64(3), field(t, p, "toAccountDeviceKey"))
}

func TestAddTransferInReceivingCurrency(t *testing.T) {
	e := newEnv(t)

	tr, err := e.svc.Transaction.AddTransfer(context.Background(), model.TransferInput{
		Date:        day("2026-02-16"),
		FromAccount: "Wallet",
		ToAccount:   "US Account",
		Money: model.MoneyInput{
			Currency:       "USD",
			CurrencyAmount: amount("100"),
			ExchangeRate:   amount("0.74"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "AUD", tr.Currency)
	assert.Equal(t, "135.14", tr.CurrencyAmount.StringFixed(2))
	assert.Equal(t, "100.00", tr.Amount.StringFixed(2))
}

func TestAddTransferBetweenForeignAccountsUsesCrossRate(t *testing.T) {
	e := newEnv(t)

	tr, err := e.svc.Transaction.AddTransfer(context.Background(), model.TransferInput{
		Date:        day("2026-02-16"),
		FromAccount: "EU Account",
		ToAccount:   "US Account",
		Money:       model.MoneyInput{Amount: amount("100")},
	})
	require.NoError(t, err)

	// 1.62 / 1.35 = 1.2
	assert.Equal(t, "EUR", tr.Currency)
	assert.Equal(t, "100.00", tr.CurrencyAmount.StringFixed(2))
	assert.Equal(t, "120.00", tr.Amount.StringFixed(2))
}

func TestAddTransferRejectsThirdCurrency(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Transaction.AddTransfer(context.Background(), model.TransferInput{
		Date:        day("2026-02-16"),
		FromAccount: "Wallet",
		ToAccount:   "US Account",
		Money:       model.MoneyInput{Currency: "EUR", CurrencyAmount: amount("10")},
	})
	assert.Equal(t, apperr.KindCurrency, apperr.Kind(err))
	assert.Equal(t, 0, e.fixture.Count(t, "Transfer"))
	assert.Equal(t, 0, e.fixture.Count(t, "AccountTrans"))
}

func TestAddTransferToSameAccount(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Transaction.AddTransfer(context.Background(), model.TransferInput{
		Date:        day("2026-02-16"),
		FromAccount: "Wallet",
		ToAccount:   "Wallet",
		Money:       model.MoneyInput{Amount: amount("5")},
	})
	assert.Equal(t, apperr.KindValidation, apperr.Kind(err))
}

func TestUpdateAndDeleteTransfer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tr, err := e.svc.Transaction.AddTransfer(ctx, model.TransferInput{
		Date:        day("2026-02-16"),
		FromAccount: "Wallet",
		ToAccount:   "US Account",
		Money:       model.MoneyInput{Amount: amount("200"), ExchangeRate: amount("0.74")},
	})
	require.NoError(t, err)

	// Rate only: sending side kept, receiving side recomputed.
	updated, err := e.svc.Transaction.UpdateTransfer(ctx, tr.Key, model.TransferUpdate{
		Money: model.MoneyInput{ExchangeRate: amount("0.75")},
	})
	require.NoError(t, err)
	assert.Equal(t, "200.00", updated.CurrencyAmount.StringFixed(2))
	assert.Equal(t, "150.00", updated.Amount.StringFixed(2))
	assert.Equal(t, []ledgerEntry{
		{account: testutil.AccountWallet, transType: 3, amount: 200},
		{account: testutil.AccountUS, transType: 4, amount: 150},
	}, ledgerFor(t, e, tr.Key))

	payloads := e.queued(t)
	require.Len(t, payloads, 2, "one changed field")
	assert.Equal(t, syncqueue.OpUpdateTransfer, payloads[1].Operation)
	assert.Equal(t, "150.00", field(t, payloads[1], "amount"))

	require.NoError(t, e.svc.Transaction.DeleteTransfer(ctx, tr.Key))
	assert.Empty(t, ledgerFor(t, e, tr.Key))
	assert.Equal(t, 0, e.fixture.Count(t, "Transfer"))

	payloads = e.queued(t)
	require.Len(t, payloads, 3)
	assert.Equal(t, []string{"Operation", "deviceKey", "deviceId"}, payloads[2].Names())
}

func TestUpdateTransferCurrencyWithoutAmount(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tr, err := e.svc.Transaction.AddTransfer(ctx, model.TransferInput{
		Date:        day("2026-02-16"),
		FromAccount: "Wallet",
		ToAccount:   "US Account",
		Money:       model.MoneyInput{Amount: amount("200"), ExchangeRate: amount("0.74")},
	})
	require.NoError(t, err)

	_, err = e.svc.Transaction.UpdateTransfer(ctx, tr.Key, model.TransferUpdate{
		Money: model.MoneyInput{Currency: "USD"},
	})
	assert.Equal(t, apperr.KindValidation, apperr.Kind(err))

	assert.Equal(t, []ledgerEntry{
		{account: testutil.AccountWallet, transType: 3, amount: 200},
		{account: testutil.AccountUS, transType: 4, amount: 148},
	}, ledgerFor(t, e, tr.Key))
	assert.Equal(t, 1, e.fixture.Count(t, "SyncUpdate"))
}
