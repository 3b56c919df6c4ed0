package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/store"
	"github.com/hance08/hb/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapCreatesCompanionTables(t *testing.T) {
	f := testutil.NewFixture(t)

	for _, table := range []string{
		"DeviceInfo", "Settings", "Currency", "Account", "Category", "SubCategory",
		"Payee", "Expense", "Income", "Transfer", "AccountTrans", "SyncUpdate",
	} {
		assert.Equal(t, 0, f.Count(t, table), table)
	}
}

func TestNewStoreRequiresExistingFile(t *testing.T) {
	_, err := store.NewStore(filepath.Join(t.TempDir(), "missing.db"), store.DefaultOptions())

	var storageErr *apperr.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.ErrorIs(t, err, store.ErrDatabaseAbsent)
}

func TestReferenceLookups(t *testing.T) {
	f := testutil.NewSeededFixture(t)
	s := f.Store

	acc, err := s.GetAccountByName("US Account")
	require.NoError(t, err)
	assert.Equal(t, int64(testutil.AccountUS), acc.Key)
	assert.Equal(t, "USD", acc.Currency)

	_, err = s.GetAccountByName("Nope")
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "account", notFound.Entity)

	cat, err := s.GetCategoryByName("Food (Basic)")
	require.NoError(t, err)

	sub, err := s.GetSubCategoryByName(cat.Key, "Groceries")
	require.NoError(t, err)
	assert.Equal(t, int64(testutil.SubCategoryGroceries), sub.Key)

	_, err = s.GetSubCategoryByName(cat.Key, "Fuel")
	require.ErrorAs(t, err, &notFound)

	subs, err := s.ListSubCategories(cat.Key)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Groceries", subs[0].Name)

	base, err := s.GetSettingsCurrency()
	require.NoError(t, err)
	assert.Equal(t, testutil.BaseCurrency, base)

	currencies, err := s.ListCurrencies()
	require.NoError(t, err)
	assert.Len(t, currencies, 4)
}

func TestDeviceQueries(t *testing.T) {
	f := testutil.NewSeededFixture(t)
	s := f.Store

	devices, err := s.ListPrimaryDevices()
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, testutil.PrimaryDeviceID, devices[0].DeviceID)

	ed, err := s.GetEntityDevice(store.TableCategory, testutil.CategoryFood)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ed.DeviceIDKey.Int64)
	assert.Equal(t, int64(21), ed.DeviceKey.Int64)

	ed, err = s.GetEntityDevice(store.TableAccount, testutil.AccountBank)
	require.NoError(t, err)
	assert.False(t, ed.DeviceIDKey.Valid)

	_, err = s.GetEntityDevice("Expense", 1)
	assert.Error(t, err)

	next, err := s.NextDeviceKey("Expense")
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	f.Exec(t, "INSERT INTO Expense (date, deviceKey) VALUES ('2026-01-02', 41)")
	next, err = s.NextDeviceKey("Expense")
	require.NoError(t, err)
	assert.Equal(t, int64(42), next)
}

func newExpenseRow() *store.ExpenseRow {
	return &store.ExpenseRow{
		Date:           "2026-02-16",
		CatKey:         testutil.CategoryFood,
		SubCatKey:      testutil.SubCategoryGroceries,
		Amount:         decimal.RequireFromString("25.50"),
		Notes:          "Coffee beans",
		PayFrom:        testutil.AccountWallet,
		DeviceIDKey:    1,
		DeviceKey:      1,
		TimeStamp:      "2026-02-16 10:15:42",
		Currency:       "AUD",
		CurrencyAmount: "25.50",
	}
}

func TestExpenseRoundTrip(t *testing.T) {
	f := testutil.NewSeededFixture(t)
	s := f.Store

	key, err := s.InsertExpense(newExpenseRow())
	require.NoError(t, err)

	got, err := s.GetExpense(key)
	require.NoError(t, err)
	assert.Equal(t, "Wallet", got.AccountName)
	assert.Equal(t, "Food (Basic)", got.CategoryName)
	assert.Equal(t, "Groceries", got.SubCategoryName)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("25.5")))
	assert.Equal(t, "25.50", got.CurrencyAmount)

	var periods int
	var detail, split string
	require.NoError(t, f.DB.QueryRow(
		"SELECT periods, isDetailEntry, isCategorySplit FROM Expense WHERE key = ?", key,
	).Scan(&periods, &detail, &split))
	assert.Equal(t, 1, periods)
	assert.Equal(t, "Y", detail)
	assert.Equal(t, "N", split)

	dup, err := s.FindDuplicateExpense(newExpenseRow())
	require.NoError(t, err)
	require.NotNil(t, dup)
	assert.Equal(t, key, dup.Key)

	other := newExpenseRow()
	other.Currency = "USD"
	dup, err = s.FindDuplicateExpense(other)
	require.NoError(t, err)
	assert.Nil(t, dup)

	got.Notes = "Espresso beans"
	require.NoError(t, s.UpdateExpense(got))
	got, err = s.GetExpense(key)
	require.NoError(t, err)
	assert.Equal(t, "Espresso beans", got.Notes)

	list, err := s.ListExpenses(store.ListQuery{Start: "2026-02-01", End: "2026-02-28", AccountKey: testutil.AccountWallet})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = s.ListExpenses(store.ListQuery{Start: "2026-03-01"})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.DeleteExpense(key))
	_, err = s.GetExpense(key)
	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.ErrorAs(t, s.DeleteExpense(key), &notFound)
}

func TestLedgerTotals(t *testing.T) {
	f := testutil.NewSeededFixture(t)
	s := f.Store

	entries := []store.AccountTrans{
		{AccountKey: testutil.AccountWallet, TransType: 1, TransKey: 1, TransDate: "2026-01-10", TransAmount: decimal.NewFromInt(30)},
		{AccountKey: testutil.AccountWallet, TransType: 2, TransKey: 1, TransDate: "2026-01-11", TransAmount: decimal.NewFromInt(200)},
		{AccountKey: testutil.AccountWallet, TransType: 3, TransKey: 1, TransDate: "2026-01-12", TransAmount: decimal.NewFromInt(50)},
		{AccountKey: testutil.AccountWallet, TransType: 4, TransKey: 2, TransDate: "2026-02-01", TransAmount: decimal.NewFromInt(5)},
		{AccountKey: testutil.AccountBank, TransType: 4, TransKey: 1, TransDate: "2026-01-12", TransAmount: decimal.NewFromInt(50)},
	}
	for i := range entries {
		_, err := s.InsertAccountTrans(&entries[i])
		require.NoError(t, err)
	}

	totals, err := s.SumAccountTrans(testutil.AccountWallet, "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.True(t, totals.Inflows.Equal(decimal.NewFromInt(200)), totals.Inflows.String())
	assert.True(t, totals.Outflows.Equal(decimal.NewFromInt(80)), totals.Outflows.String())

	rows, err := s.ListAccountTrans(1, 3, 4)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "N", rows[0].Checked)

	require.NoError(t, s.DeleteAccountTrans(1, 3, 4))
	assert.Equal(t, 3, f.Count(t, "AccountTrans"))
}

func TestExecTxRollsBack(t *testing.T) {
	f := testutil.NewSeededFixture(t)
	boom := errors.New("boom")

	err := f.Store.ExecTx(func(tx store.Repository) error {
		if _, err := tx.InsertExpense(newExpenseRow()); err != nil {
			return err
		}
		return boom
	})

	var storageErr *apperr.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, f.Count(t, "Expense"))
}

func TestExecTxKeepsTypedErrors(t *testing.T) {
	f := testutil.NewSeededFixture(t)

	err := f.Store.ExecTx(func(tx store.Repository) error {
		_, err := tx.GetExpense(99)
		return err
	})

	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, apperr.KindNotFound, apperr.Kind(err))
}

func TestExecTxNested(t *testing.T) {
	f := testutil.NewSeededFixture(t)

	err := f.Store.ExecTx(func(tx store.Repository) error {
		return tx.ExecTx(func(store.Repository) error { return nil })
	})
	assert.ErrorIs(t, err, store.ErrInTransaction)
}

func lockDatabase(t *testing.T, f *testutil.Fixture) func() {
	t.Helper()
	ctx := context.Background()

	conn, err := f.DB.Conn(ctx)
	require.NoError(t, err)
	_, err = conn.ExecContext(ctx, "BEGIN IMMEDIATE")
	require.NoError(t, err)

	return func() {
		conn.ExecContext(ctx, "ROLLBACK")
		conn.Close()
	}
}

func TestExecTxRetriesWhileLocked(t *testing.T) {
	f := testutil.NewSeededFixture(t)

	opts := store.DefaultOptions()
	opts.BusyTimeout = 0
	opts.LockRetries = 20
	opts.LockBackoff = 10 * time.Millisecond
	s, err := store.NewStore(f.Path, opts)
	require.NoError(t, err)
	defer s.Close()

	release := lockDatabase(t, f)
	timer := time.AfterFunc(50*time.Millisecond, release)
	defer timer.Stop()

	err = s.ExecTx(func(tx store.Repository) error {
		_, err := tx.InsertExpense(newExpenseRow())
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.Count(t, "Expense"))
}

func TestExecTxGivesUpWhenLocked(t *testing.T) {
	f := testutil.NewSeededFixture(t)

	opts := store.DefaultOptions()
	opts.BusyTimeout = 0
	opts.LockRetries = 2
	opts.LockBackoff = time.Millisecond
	s, err := store.NewStore(f.Path, opts)
	require.NoError(t, err)
	defer s.Close()

	release := lockDatabase(t, f)
	defer release()

	called := 0
	err = s.ExecTx(func(tx store.Repository) error {
		called++
		return nil
	})

	var storageErr *apperr.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Contains(t, err.Error(), "3 attempts")
	assert.Equal(t, 0, called)
}
