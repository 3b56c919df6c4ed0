package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/hb/internal/apperr"
	"github.com/shopspring/decimal"
)

const transferSelect = `
	SELECT t.key, t.transferDate, COALESCE(t.fromAccount, 0), COALESCE(t.toAccount, 0),
		COALESCE(t.amount, 0), COALESCE(t.notes, ''), COALESCE(t.deviceIdKey, 0), COALESCE(t.deviceKey, 0),
		COALESCE(t.timeStamp, ''), COALESCE(t.currency, ''), COALESCE(CAST(t.currencyAmount AS TEXT), ''),
		COALESCE(t.recurringKey, 0), COALESCE(fa.name, ''), COALESCE(ta.name, '')
	FROM Transfer t
	LEFT JOIN Account fa ON fa.key = t.fromAccount
	LEFT JOIN Account ta ON ta.key = t.toAccount`

func scanTransfer(scan func(dest ...any) error) (*TransferRow, error) {
	row := &TransferRow{}
	var amount float64
	err := scan(
		&row.Key, &row.TransferDate, &row.FromAccount, &row.ToAccount,
		&amount, &row.Notes, &row.DeviceIDKey, &row.DeviceKey,
		&row.TimeStamp, &row.Currency, &row.CurrencyAmount,
		&row.RecurringKey, &row.FromAccountName, &row.ToAccountName,
	)
	if err != nil {
		return nil, err
	}
	row.Amount = decimal.NewFromFloat(amount)
	return row, nil
}

// InsertTransfer stores the receiving-side amount in amount and the
// sending-side amount, in the sending account's currency, in currencyAmount.
func (s *Store) InsertTransfer(row *TransferRow) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO Transfer (
			transferDate, fromAccount, toAccount, amount, notes, deviceIdKey, deviceKey,
			timeStamp, currency, currencyAmount, recurringKey
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		row.TransferDate, row.FromAccount, row.ToAccount, row.Amount.InexactFloat64(), row.Notes,
		row.DeviceIDKey, row.DeviceKey, row.TimeStamp, row.Currency, row.CurrencyAmount,
		row.RecurringKey,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transfer: %w", err)
	}

	key, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return key, nil
}

func (s *Store) GetTransfer(key int64) (*TransferRow, error) {
	row, err := scanTransfer(s.db.QueryRow(transferSelect+" WHERE t.key = ?", key).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("transfer", key)
		}
		return nil, fmt.Errorf("failed to query transfer %d: %w", key, err)
	}
	return row, nil
}

func (s *Store) ListTransfers(q ListQuery) ([]*TransferRow, error) {
	clause, args := listClause("t.transferDate", []string{"t.fromAccount", "t.toAccount"}, q)

	rows, err := s.db.Query(transferSelect+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*TransferRow
	for rows.Next() {
		row, err := scanTransfer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, row)
	}
	return transfers, rows.Err()
}

func (s *Store) UpdateTransfer(row *TransferRow) error {
	result, err := s.db.Exec(`
		UPDATE Transfer
		SET transferDate = ?, fromAccount = ?, toAccount = ?, amount = ?, notes = ?,
			timeStamp = ?, currency = ?, currencyAmount = ?
		WHERE key = ?
	`,
		row.TransferDate, row.FromAccount, row.ToAccount, row.Amount.InexactFloat64(), row.Notes,
		row.TimeStamp, row.Currency, row.CurrencyAmount, row.Key,
	)
	if err != nil {
		return fmt.Errorf("failed to update transfer: %w", err)
	}
	return checkAffected(result, "transfer", row.Key)
}

func (s *Store) DeleteTransfer(key int64) error {
	result, err := s.db.Exec("DELETE FROM Transfer WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete transfer: %w", err)
	}
	return checkAffected(result, "transfer", key)
}

func (s *Store) FindDuplicateTransfer(row *TransferRow) (*TransferRow, error) {
	var key int64
	err := s.db.QueryRow(`
		SELECT key FROM Transfer
		WHERE transferDate = ?
		  AND fromAccount = ?
		  AND toAccount = ?
		  AND amount = ?
		  AND COALESCE(currency, '') = ?
		  AND COALESCE(notes, '') = ?
		ORDER BY key
		LIMIT 1
	`,
		row.TransferDate, row.FromAccount, row.ToAccount, row.Amount.InexactFloat64(), row.Currency, row.Notes,
	).Scan(&key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check duplicate transfer: %w", err)
	}
	return s.GetTransfer(key)
}
