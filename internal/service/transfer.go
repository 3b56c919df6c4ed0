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

func validateTransferInput(in model.TransferInput) error {
	if in.Date.IsZero() {
		return apperr.Validation("date", "is required")
	}
	if err := validation.ValidateName("from_account", in.FromAccount); err != nil {
		return err
	}
	if err := validation.ValidateName("to_account", in.ToAccount); err != nil {
		return err
	}
	if in.FromAccount == in.ToAccount {
		return apperr.Validation("to_account", "must differ from from_account")
	}
	if in.Money.IsZero() {
		return apperr.Validation("amount", "an amount or currency amount is required")
	}
	return validation.ValidateNotes(in.Notes)
}

func transferRefs(row *store.TransferRow) []device.Ref {
	return []device.Ref{
		{Table: store.TableAccount, Key: row.FromAccount},
		{Table: store.TableAccount, Key: row.ToAccount},
	}
}

// transferSnapshot formats amount, the receiving side, in the receiving
// account's currency.
func transferSnapshot(row *store.TransferRow, dc *device.Context, toCurrency string) syncqueue.Snapshot {
	return syncqueue.Snapshot{
		Key:            row.Key,
		TimeStamp:      row.TimeStamp,
		Date:           row.TransferDate,
		Amount:         currency.FormatAmount(row.Amount, toCurrency),
		Currency:       row.Currency,
		CurrencyAmount: row.CurrencyAmount,
		Notes:          row.Notes,
		RecurringKey:   row.RecurringKey,
		FromAccount:    entityRef(dc, store.TableAccount, row.FromAccount),
		ToAccount:      entityRef(dc, store.TableAccount, row.ToAccount),
	}
}

func duplicateTransfer(repo store.Repository, row *store.TransferRow) error {
	dup, err := repo.FindDuplicateTransfer(row)
	if err != nil || dup == nil {
		return err
	}
	return &apperr.DuplicateError{
		Kind: constants.KindTransfer,
		Key:  dup.Key,
		Fields: map[string]string{
			"date":         dup.TransferDate,
			"from_account": dup.FromAccountName,
			"to_account":   dup.ToAccountName,
			"amount":       dup.Amount.String(),
			"currency":     dup.Currency,
			"notes":        dup.Notes,
		},
	}
}

// transferLedger returns the transfer_out row on the sending account and
// the transfer_in row on the receiving one.
func transferLedger(row *store.TransferRow) (out, in *store.AccountTrans) {
	sending := storedAmount(row.CurrencyAmount, row.Amount)
	out = ledgerRow(row.FromAccount, constants.TransTypeTransferOut, row.Key, row.TransferDate, row.TimeStamp, sending)
	in = ledgerRow(row.ToAccount, constants.TransTypeTransferIn, row.Key, row.TransferDate, row.TimeStamp, row.Amount)
	return out, in
}

func (ts *TransactionService) AddTransfer(ctx context.Context, in model.TransferInput) (*model.Transfer, error) {
	if err := validateTransferInput(in); err != nil {
		return nil, err
	}

	var key int64
	var queued int
	err := ts.repo.ExecTx(func(repo store.Repository) error {
		u, err := ts.begin(ctx, repo, syncqueue.OpAddTransfer)
		if err != nil {
			return err
		}

		from, err := u.refs.account("from_account", in.FromAccount)
		if err != nil {
			return err
		}
		to, err := u.refs.account("to_account", in.ToAccount)
		if err != nil {
			return err
		}
		if from.Key == to.Key {
			return apperr.Validation("to_account", "must differ from from_account")
		}

		money, err := u.engine.NormalizeTransfer(ctx, from.Currency, to.Currency, in.Money)
		if err != nil {
			return err
		}
		u.log.Debug().
			Str("sending", money.CurrencyAmount.String()).
			Str("receiving", money.Amount.String()).
			Str("rate", money.ExchangeRate.String()).
			Msg("transfer normalized")

		row := &store.TransferRow{
			TransferDate:   in.Date.Format(constants.DateFormat),
			FromAccount:    from.Key,
			ToAccount:      to.Key,
			Amount:         money.Amount,
			Notes:          in.Notes,
			Currency:       money.Currency,
			CurrencyAmount: currency.FormatAmount(money.CurrencyAmount, money.Currency),
			RecurringKey:   constants.DefaultRecurringKey,
		}
		if err := duplicateTransfer(repo, row); err != nil {
			return err
		}

		dc, err := u.devices.Resolve(transferRefs(row)...)
		if err != nil {
			return err
		}
		row.DeviceIDKey = dc.Primary.Key
		if row.DeviceKey, err = repo.NextDeviceKey("Transfer"); err != nil {
			return err
		}
		row.TimeStamp = u.timeStamp

		if key, err = repo.InsertTransfer(row); err != nil {
			return err
		}
		row.Key = key

		out, inflow := transferLedger(row)
		if _, err := repo.InsertAccountTrans(out); err != nil {
			return err
		}
		if _, err := repo.InsertAccountTrans(inflow); err != nil {
			return err
		}

		queued, err = ts.enqueue(u, syncqueue.OpAddTransfer, dc.Primary, transferSnapshot(row, dc, to.Currency), 1)
		return err
	})
	if err != nil {
		return nil, err
	}

	ts.committed(ctx, syncqueue.OpAddTransfer, key, queued)
	return ts.GetTransfer(ctx, key)
}

func (ts *TransactionService) GetTransfer(ctx context.Context, key int64) (*model.Transfer, error) {
	row, err := ts.repo.GetTransfer(key)
	if err != nil {
		return nil, err
	}
	return toTransfer(row)
}

func (ts *TransactionService) ListTransfers(ctx context.Context, filter model.ListFilter) ([]*model.Transfer, error) {
	q, err := toListQuery(ts.repo, filter)
	if err != nil {
		return nil, err
	}
	rows, err := ts.repo.ListTransfers(q)
	if err != nil {
		return nil, err
	}

	transfers := make([]*model.Transfer, 0, len(rows))
	for _, row := range rows {
		t, err := toTransfer(row)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, nil
}

func (ts *TransactionService) UpdateTransfer(ctx context.Context, key int64, upd model.TransferUpdate) (*model.Transfer, error) {
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
		u, err := ts.begin(ctx, repo, syncqueue.OpUpdateTransfer)
		if err != nil {
			return err
		}

		before, err := repo.GetTransfer(key)
		if err != nil {
			return err
		}
		from, err := repo.GetAccountByKey(before.FromAccount)
		if err != nil {
			return err
		}
		to, err := repo.GetAccountByKey(before.ToAccount)
		if err != nil {
			return err
		}
		after := *before

		if upd.Date != nil {
			after.TransferDate = upd.Date.Format(constants.DateFormat)
		}
		if upd.Notes != nil {
			after.Notes = *upd.Notes
		}
		if !upd.Money.IsZero() {
			in := mergeMoney(upd.Money, from.Currency, storedAmount(before.CurrencyAmount, before.Amount))
			money, err := u.engine.NormalizeTransfer(ctx, from.Currency, to.Currency, in)
			if err != nil {
				return err
			}
			after.Amount = money.Amount
			after.Currency = money.Currency
			after.CurrencyAmount = currency.FormatAmount(money.CurrencyAmount, money.Currency)
		}

		changes := syncqueue.Diff(transferSnapshot(before, nil, to.Currency), transferSnapshot(&after, nil, to.Currency))
		if len(changes) == 0 {
			u.log.Debug().Int64("key", key).Msg("update changes nothing")
			return nil
		}

		dc, err := u.devices.Resolve(transferRefs(&after)...)
		if err != nil {
			return err
		}
		after.TimeStamp = u.timeStamp
		if err := repo.UpdateTransfer(&after); err != nil {
			return err
		}

		out, inflow := transferLedger(&after)
		if err := repo.UpdateAccountTrans(out); err != nil {
			return err
		}
		if err := repo.UpdateAccountTrans(inflow); err != nil {
			return err
		}

		queued, err = ts.enqueue(u, syncqueue.OpUpdateTransfer, dc.Primary, transferSnapshot(&after, dc, to.Currency), len(changes))
		return err
	})
	if err != nil {
		return nil, err
	}

	ts.committed(ctx, syncqueue.OpUpdateTransfer, key, queued)
	return ts.GetTransfer(ctx, key)
}

func (ts *TransactionService) DeleteTransfer(ctx context.Context, key int64) error {
	var queued int
	err := ts.repo.ExecTx(func(repo store.Repository) error {
		u, err := ts.begin(ctx, repo, syncqueue.OpDeleteTransfer)
		if err != nil {
			return err
		}
		if _, err := repo.GetTransfer(key); err != nil {
			return err
		}
		dc, err := u.devices.Resolve()
		if err != nil {
			return err
		}

		if err := repo.DeleteAccountTrans(key, constants.TransTypeTransferOut, constants.TransTypeTransferIn); err != nil {
			return err
		}
		if err := repo.DeleteTransfer(key); err != nil {
			return err
		}

		queued, err = ts.enqueue(u, syncqueue.OpDeleteTransfer, dc.Primary, syncqueue.Snapshot{Key: key}, 1)
		return err
	})
	if err != nil {
		return err
	}

	ts.committed(ctx, syncqueue.OpDeleteTransfer, key, queued)
	return nil
}

func toTransfer(row *store.TransferRow) (*model.Transfer, error) {
	date, err := parseStoredDate(row.TransferDate)
	if err != nil {
		return nil, apperr.Validation("date", "stored transfer %d has unreadable date %q", row.Key, row.TransferDate)
	}
	sending := storedAmount(row.CurrencyAmount, row.Amount)
	return &model.Transfer{
		Key:         row.Key,
		Date:        date,
		FromAccount: row.FromAccountName,
		ToAccount:   row.ToAccountName,
		Money: model.Money{
			Amount:         row.Amount,
			Currency:       row.Currency,
			CurrencyAmount: sending,
			ExchangeRate:   impliedRate(row.Amount, sending),
		},
		Notes:     row.Notes,
		DeviceKey: row.DeviceKey,
		TimeStamp: row.TimeStamp,
	}, nil
}
