package service

import (
	"context"
	"strings"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/constants"
	"github.com/hance08/hb/internal/currency"
	"github.com/hance08/hb/internal/device"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/store"
	"github.com/hance08/hb/internal/syncqueue"
	"github.com/hance08/hb/internal/validation"
)

func validateIncomeInput(in model.IncomeInput) error {
	if in.Date.IsZero() {
		return apperr.Validation("date", "is required")
	}
	if err := validation.ValidateName("account", in.Account); err != nil {
		return err
	}
	if err := validation.ValidateName("name", in.Name); err != nil {
		return err
	}
	if in.Money.IsZero() {
		return apperr.Validation("amount", "an amount or currency amount is required")
	}
	return validation.ValidateNotes(in.Notes)
}

func incomeSnapshot(row *store.IncomeRow, dc *device.Context, base string) syncqueue.Snapshot {
	return syncqueue.Snapshot{
		Key:            row.Key,
		TimeStamp:      row.TimeStamp,
		Date:           row.Date,
		Amount:         currency.FormatAmount(row.Amount, base),
		Currency:       row.Currency,
		CurrencyAmount: row.CurrencyAmount,
		Notes:          row.Notes,
		Name:           row.Name,
		RecurringKey:   row.RecurringKey,
		Account:        entityRef(dc, store.TableAccount, row.AddIncomeTo),
	}
}

func duplicateIncome(repo store.Repository, row *store.IncomeRow) error {
	dup, err := repo.FindDuplicateIncome(row)
	if err != nil || dup == nil {
		return err
	}
	return &apperr.DuplicateError{
		Kind: constants.KindIncome,
		Key:  dup.Key,
		Fields: map[string]string{
			"date":     dup.Date,
			"account":  dup.AccountName,
			"amount":   dup.Amount.String(),
			"currency": dup.Currency,
			"name":     dup.Name,
			"notes":    dup.Notes,
		},
	}
}

func (ts *TransactionService) AddIncome(ctx context.Context, in model.IncomeInput) (*model.Income, error) {
	if err := validateIncomeInput(in); err != nil {
		return nil, err
	}

	var key int64
	var queued int
	err := ts.repo.ExecTx(func(repo store.Repository) error {
		u, err := ts.begin(ctx, repo, syncqueue.OpAddIncome)
		if err != nil {
			return err
		}

		acct, err := u.refs.account("account", in.Account)
		if err != nil {
			return err
		}
		money, err := u.engine.Normalize(ctx, acct.Currency, in.Money)
		if err != nil {
			return err
		}

		row := &store.IncomeRow{
			Date:           in.Date.Format(constants.DateFormat),
			Name:           strings.TrimSpace(in.Name),
			Amount:         money.Amount,
			AddIncomeTo:    acct.Key,
			Notes:          in.Notes,
			Currency:       money.Currency,
			CurrencyAmount: currency.FormatAmount(money.CurrencyAmount, money.Currency),
			RecurringKey:   constants.DefaultRecurringKey,
		}
		if err := duplicateIncome(repo, row); err != nil {
			return err
		}

		dc, err := u.devices.Resolve(device.Ref{Table: store.TableAccount, Key: acct.Key})
		if err != nil {
			return err
		}
		row.DeviceIDKey = dc.Primary.Key
		if row.DeviceKey, err = repo.NextDeviceKey("Income"); err != nil {
			return err
		}
		row.TimeStamp = u.timeStamp

		if key, err = repo.InsertIncome(row); err != nil {
			return err
		}
		row.Key = key

		entry := ledgerRow(acct.Key, constants.TransTypeIncome, key, row.Date, row.TimeStamp, row.Amount)
		if _, err := repo.InsertAccountTrans(entry); err != nil {
			return err
		}

		queued, err = ts.enqueue(u, syncqueue.OpAddIncome, dc.Primary, incomeSnapshot(row, dc, u.base), 1)
		return err
	})
	if err != nil {
		return nil, err
	}

	ts.committed(ctx, syncqueue.OpAddIncome, key, queued)
	return ts.GetIncome(ctx, key)
}

func (ts *TransactionService) GetIncome(ctx context.Context, key int64) (*model.Income, error) {
	row, err := ts.repo.GetIncome(key)
	if err != nil {
		return nil, err
	}
	return toIncome(row)
}

func (ts *TransactionService) ListIncome(ctx context.Context, filter model.ListFilter) ([]*model.Income, error) {
	q, err := toListQuery(ts.repo, filter)
	if err != nil {
		return nil, err
	}
	rows, err := ts.repo.ListIncome(q)
	if err != nil {
		return nil, err
	}

	income := make([]*model.Income, 0, len(rows))
	for _, row := range rows {
		i, err := toIncome(row)
		if err != nil {
			return nil, err
		}
		income = append(income, i)
	}
	return income, nil
}

func (ts *TransactionService) UpdateIncome(ctx context.Context, key int64, upd model.IncomeUpdate) (*model.Income, error) {
	if upd.IsZero() {
		return nil, apperr.Validation("update", "no fields to update")
	}
	if err := validateMoneyUpdate(upd.Money); err != nil {
		return nil, err
	}
	if upd.Name != nil {
		if err := validation.ValidateName("name", *upd.Name); err != nil {
			return nil, err
		}
	}
	if upd.Notes != nil {
		if err := validation.ValidateNotes(*upd.Notes); err != nil {
			return nil, err
		}
	}

	var queued int
	err := ts.repo.ExecTx(func(repo store.Repository) error {
		u, err := ts.begin(ctx, repo, syncqueue.OpUpdateIncome)
		if err != nil {
			return err
		}

		before, err := repo.GetIncome(key)
		if err != nil {
			return err
		}
		after := *before

		if upd.Date != nil {
			after.Date = upd.Date.Format(constants.DateFormat)
		}
		if upd.Name != nil {
			after.Name = strings.TrimSpace(*upd.Name)
		}
		if upd.Notes != nil {
			after.Notes = *upd.Notes
		}
		if !upd.Money.IsZero() {
			acct, err := repo.GetAccountByKey(after.AddIncomeTo)
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

		changes := syncqueue.Diff(incomeSnapshot(before, nil, u.base), incomeSnapshot(&after, nil, u.base))
		if len(changes) == 0 {
			u.log.Debug().Int64("key", key).Msg("update changes nothing")
			return nil
		}

		dc, err := u.devices.Resolve(device.Ref{Table: store.TableAccount, Key: after.AddIncomeTo})
		if err != nil {
			return err
		}
		after.TimeStamp = u.timeStamp
		if err := repo.UpdateIncome(&after); err != nil {
			return err
		}

		entry := ledgerRow(after.AddIncomeTo, constants.TransTypeIncome, key, after.Date, after.TimeStamp, after.Amount)
		if err := repo.UpdateAccountTrans(entry); err != nil {
			return err
		}

		queued, err = ts.enqueue(u, syncqueue.OpUpdateIncome, dc.Primary, incomeSnapshot(&after, dc, u.base), len(changes))
		return err
	})
	if err != nil {
		return nil, err
	}

	ts.committed(ctx, syncqueue.OpUpdateIncome, key, queued)
	return ts.GetIncome(ctx, key)
}

func (ts *TransactionService) DeleteIncome(ctx context.Context, key int64) error {
	var queued int
	err := ts.repo.ExecTx(func(repo store.Repository) error {
		u, err := ts.begin(ctx, repo, syncqueue.OpDeleteIncome)
		if err != nil {
			return err
		}
		if _, err := repo.GetIncome(key); err != nil {
			return err
		}
		dc, err := u.devices.Resolve()
		if err != nil {
			return err
		}

		if err := repo.DeleteAccountTrans(key, constants.TransTypeIncome); err != nil {
			return err
		}
		if err := repo.DeleteIncome(key); err != nil {
			return err
		}

		queued, err = ts.enqueue(u, syncqueue.OpDeleteIncome, dc.Primary, syncqueue.Snapshot{Key: key}, 1)
		return err
	})
	if err != nil {
		return err
	}

	ts.committed(ctx, syncqueue.OpDeleteIncome, key, queued)
	return nil
}

func toIncome(row *store.IncomeRow) (*model.Income, error) {
	date, err := parseStoredDate(row.Date)
	if err != nil {
		return nil, apperr.Validation("date", "stored income %d has unreadable date %q", row.Key, row.Date)
	}
	currencyAmount := storedAmount(row.CurrencyAmount, row.Amount)
	return &model.Income{
		Key:     row.Key,
		Date:    date,
		Account: row.AccountName,
		Name:    row.Name,
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
