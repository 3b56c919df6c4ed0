package service

import (
	"context"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/constants"
	"github.com/hance08/hb/internal/currency"
	"github.com/hance08/hb/internal/device"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/store"
	"github.com/hance08/hb/internal/syncqueue"
	"github.com/hance08/hb/internal/validation"
)

func validateExpenseInput(in model.ExpenseInput) error {
	if in.Date.IsZero() {
		return apperr.Validation("date", "is required")
	}
	if err := validation.ValidateName("account", in.Account); err != nil {
		return err
	}
	if err := validation.ValidateName("category", in.Category); err != nil {
		return err
	}
	if in.Money.IsZero() {
		return apperr.Validation("amount", "an amount or currency amount is required")
	}
	return validation.ValidateNotes(in.Notes)
}

func expenseRefs(row *store.ExpenseRow) []device.Ref {
	return []device.Ref{
		{Table: store.TableAccount, Key: row.PayFrom},
		{Table: store.TableCategory, Key: row.CatKey},
		{Table: store.TableSubCategory, Key: row.SubCatKey},
		{Table: store.TablePayee, Key: row.PayeeKey},
	}
}

// expenseSnapshot renders row for a payload. dc may be nil when only the
// keys matter, as for the pre-update side of a diff.
func expenseSnapshot(row *store.ExpenseRow, dc *device.Context, base string) syncqueue.Snapshot {
	return syncqueue.Snapshot{
		Key:            row.Key,
		TimeStamp:      row.TimeStamp,
		Date:           row.Date,
		Amount:         currency.FormatAmount(row.Amount, base),
		Currency:       row.Currency,
		CurrencyAmount: row.CurrencyAmount,
		Notes:          row.Notes,
		RecurringKey:   row.RecurringKey,
		Account:        entityRef(dc, store.TableAccount, row.PayFrom),
		Category:       entityRef(dc, store.TableCategory, row.CatKey),
		SubCategory:    entityRef(dc, store.TableSubCategory, row.SubCatKey),
		Payee:          entityRef(dc, store.TablePayee, row.PayeeKey),
	}
}

func duplicateExpense(repo store.Repository, row *store.ExpenseRow) error {
	dup, err := repo.FindDuplicateExpense(row)
	if err != nil || dup == nil {
		return err
	}
	return &apperr.DuplicateError{
		Kind: constants.KindExpense,
		Key:  dup.Key,
		Fields: map[string]string{
			"date":     dup.Date,
			"account":  dup.AccountName,
			"amount":   dup.Amount.String(),
			"currency": dup.Currency,
			"category": dup.CategoryName,
			"notes":    dup.Notes,
		},
	}
}

func (ts *TransactionService) AddExpense(ctx context.Context, in model.ExpenseInput) (*model.Expense, error) {
	if err := validateExpenseInput(in); err != nil {
		return nil, err
	}

	var key int64
	var queued int
	err := ts.repo.ExecTx(func(repo store.Repository) error {
		u, err := ts.begin(ctx, repo, syncqueue.OpAddExpense)
		if err != nil {
			return err
		}

		acct, err := u.refs.account("account", in.Account)
		if err != nil {
			return err
		}
		cat, err := u.refs.category(in.Category)
		if err != nil {
			return err
		}
		subKey, err := u.refs.subCategory(cat.Key, in.SubCategory)
		if err != nil {
			return err
		}
		payeeKey, err := u.refs.payee(in.Payee)
		if err != nil {
			return err
		}

		money, err := u.engine.Normalize(ctx, acct.Currency, in.Money)
		if err != nil {
			return err
		}
		u.log.Debug().Str("amount", money.Amount.String()).Str("currency", money.Currency).Msg("currency normalized")

		row := &store.ExpenseRow{
			Date:           in.Date.Format(constants.DateFormat),
			CatKey:         cat.Key,
			SubCatKey:      subKey,
			Amount:         money.Amount,
			Notes:          in.Notes,
			PayFrom:        acct.Key,
			PayeeKey:       payeeKey,
			Currency:       money.Currency,
			CurrencyAmount: currency.FormatAmount(money.CurrencyAmount, money.Currency),
			RecurringKey:   constants.DefaultRecurringKey,
		}
		if err := duplicateExpense(repo, row); err != nil {
			return err
		}

		dc, err := u.devices.Resolve(expenseRefs(row)...)
		if err != nil {
			return err
		}
		row.DeviceIDKey = dc.Primary.Key
		if row.DeviceKey, err = repo.NextDeviceKey("Expense"); err != nil {
			return err
		}
		row.TimeStamp = u.timeStamp

		if key, err = repo.InsertExpense(row); err != nil {
			return err
		}
		row.Key = key

		entry := ledgerRow(acct.Key, constants.TransTypeExpense, key, row.Date, row.TimeStamp, row.Amount)
		if _, err := repo.InsertAccountTrans(entry); err != nil {
			return err
		}

		queued, err = ts.enqueue(u, syncqueue.OpAddExpense, dc.Primary, expenseSnapshot(row, dc, u.base), 1)
		return err
	})
	if err != nil {
		return nil, err
	}

	ts.committed(ctx, syncqueue.OpAddExpense, key, queued)
	return ts.GetExpense(ctx, key)
}

func (ts *TransactionService) GetExpense(ctx context.Context, key int64) (*model.Expense, error) {
	row, err := ts.repo.GetExpense(key)
	if err != nil {
		return nil, err
	}
	return toExpense(row)
}

func (ts *TransactionService) ListExpenses(ctx context.Context, filter model.ListFilter) ([]*model.Expense, error) {
	q, err := toListQuery(ts.repo, filter)
	if err != nil {
		return nil, err
	}
	rows, err := ts.repo.ListExpenses(q)
	if err != nil {
		return nil, err
	}

	expenses := make([]*model.Expense, 0, len(rows))
	for _, row := range rows {
		e, err := toExpense(row)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// UpdateExpense applies upd to the stored expense. One UpdateExpense queue
// row is written per changed field; an update that changes nothing writes
// nothing.
func (ts *TransactionService) UpdateExpense(ctx context.Context, key int64, upd model.ExpenseUpdate) (*model.Expense, error) {
	if upd.IsZero() {
		return nil, apperr.Validation("update", "no fields to update")
	}
	if err := validateMoneyUpdate(upd.Money); err != nil {
		return nil, err
	}
	if upd.Notes != nil {
		if err := validation.ValidateNotes(*upd.Notes); err != nil {
			return nil, err
		}
	}

	var queued int
	err := ts.repo.ExecTx(func(repo store.Repository) error {
		u, err := ts.begin(ctx, repo, syncqueue.OpUpdateExpense)
		if err != nil {
			return err
		}

		before, err := repo.GetExpense(key)
		if err != nil {
			return err
		}
		after := *before

		if upd.Date != nil {
			after.Date = upd.Date.Format(constants.DateFormat)
		}
		if upd.Notes != nil {
			after.Notes = *upd.Notes
		}
		if upd.Category != nil {
			cat, err := u.refs.category(*upd.Category)
			if err != nil {
				return err
			}
			if cat.Key != after.CatKey {
				after.CatKey = cat.Key
				after.SubCatKey = 0
			}
		}
		if upd.SubCategory != nil {
			if after.SubCatKey, err = u.refs.subCategory(after.CatKey, *upd.SubCategory); err != nil {
				return err
			}
		}
		if !upd.Money.IsZero() {
			acct, err := repo.GetAccountByKey(after.PayFrom)
			if err != nil {
				return err
			}
			in := mergeMoney(upd.Money, before.Currency, storedAmount(before.CurrencyAmount, before.Amount))
			money, err := u.engine.Normalize(ctx, acct.Currency, in)
			if err != nil {
				return err
			}
			after.Amount = money.Amount
			after.Currency = money.Currency
			after.CurrencyAmount = currency.FormatAmount(money.CurrencyAmount, money.Currency)
		}

		changes := syncqueue.Diff(expenseSnapshot(before, nil, u.base), expenseSnapshot(&after, nil, u.base))
		if upd.SubCategory == nil {
			// cleared by the category change, not a field of its own
			changes = syncqueue.Without(changes, "subcategory")
		}
		if len(changes) == 0 {
			u.log.Debug().Int64("key", key).Msg("update changes nothing")
			return nil
		}

		dc, err := u.devices.Resolve(expenseRefs(&after)...)
		if err != nil {
			return err
		}
		after.TimeStamp = u.timeStamp
		if err := repo.UpdateExpense(&after); err != nil {
			return err
		}

		entry := ledgerRow(after.PayFrom, constants.TransTypeExpense, key, after.Date, after.TimeStamp, after.Amount)
		if err := repo.UpdateAccountTrans(entry); err != nil {
			return err
		}

		queued, err = ts.enqueue(u, syncqueue.OpUpdateExpense, dc.Primary, expenseSnapshot(&after, dc, u.base), len(changes))
		return err
	})
	if err != nil {
		return nil, err
	}

	ts.committed(ctx, syncqueue.OpUpdateExpense, key, queued)
	return ts.GetExpense(ctx, key)
}

func (ts *TransactionService) DeleteExpense(ctx context.Context, key int64) error {
	var queued int
	err := ts.repo.ExecTx(func(repo store.Repository) error {
		u, err := ts.begin(ctx, repo, syncqueue.OpDeleteExpense)
		if err != nil {
			return err
		}
		if _, err := repo.GetExpense(key); err != nil {
			return err
		}
		dc, err := u.devices.Resolve()
		if err != nil {
			return err
		}

		if err := repo.DeleteAccountTrans(key, constants.TransTypeExpense); err != nil {
			return err
		}
		if err := repo.DeleteExpense(key); err != nil {
			return err
		}

		queued, err = ts.enqueue(u, syncqueue.OpDeleteExpense, dc.Primary, syncqueue.Snapshot{Key: key}, 1)
		return err
	})
	if err != nil {
		return err
	}

	ts.committed(ctx, syncqueue.OpDeleteExpense, key, queued)
	return nil
}

func toExpense(row *store.ExpenseRow) (*model.Expense, error) {
	date, err := parseStoredDate(row.Date)
	if err != nil {
		return nil, apperr.Validation("date", "stored expense %d has unreadable date %q", row.Key, row.Date)
	}
	currencyAmount := storedAmount(row.CurrencyAmount, row.Amount)
	return &model.Expense{
		Key:         row.Key,
		Date:        date,
		Account:     row.AccountName,
		Category:    row.CategoryName,
		SubCategory: row.SubCategoryName,
		Payee:       row.PayeeName,
		Money: model.Money{
			Amount:         row.Amount,
			Currency:       row.Currency,
			CurrencyAmount: currencyAmount,
			ExchangeRate:   impliedRate(row.Amount, currencyAmount),
		},
		Notes:     row.Notes,
		DeviceKey: row.DeviceKey,
		TimeStamp: row.TimeStamp,
	}, nil
}
