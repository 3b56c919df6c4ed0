package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/hb/internal/apperr"
	"github.com/shopspring/decimal"
)

const incomeSelect = `
	SELECT t.key, t.date, COALESCE(t.name, ''), COALESCE(t.amount, 0), COALESCE(t.addIncomeTo, 0),
		COALESCE(t.notes, ''), COALESCE(t.deviceIdKey, 0), COALESCE(t.deviceKey, 0),
		COALESCE(t.timeStamp, ''), COALESCE(t.currency, ''), COALESCE(CAST(t.currencyAmount AS TEXT), ''),
		COALESCE(t.recurringKey, 0), COALESCE(a.name, '')
	FROM Income t
	LEFT JOIN Account a ON a.key = t.addIncomeTo`

func scanIncome(scan func(dest ...any) error) (*IncomeRow, error) {
	row := &IncomeRow{}
	var amount float64
	err := scan(
		&row.Key, &row.Date, &row.Name, &amount, &row.AddIncomeTo,
		&row.Notes, &row.DeviceIDKey, &row.DeviceKey,
		&row.TimeStamp, &row.Currency, &row.CurrencyAmount,
		&row.RecurringKey, &row.AccountName,
	)
	if err != nil {
		return nil, err
	}
	row.Amount = decimal.NewFromFloat(amount)
	return row, nil
}

func (s *Store) InsertIncome(row *IncomeRow) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO Income (
			date, name, amount, addIncomeTo, notes, deviceIdKey, deviceKey,
			timeStamp, currency, currencyAmount, recurringKey
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		row.Date, row.Name, row.Amount.InexactFloat64(), row.AddIncomeTo, row.Notes,
		row.DeviceIDKey, row.DeviceKey, row.TimeStamp, row.Currency, row.CurrencyAmount,
		row.RecurringKey,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert income: %w", err)
	}

	key, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return key, nil
}

func (s *Store) GetIncome(key int64) (*IncomeRow, error) {
	row, err := scanIncome(s.db.QueryRow(incomeSelect+" WHERE t.key = ?", key).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("income", key)
		}
		return nil, fmt.Errorf("failed to query income %d: %w", key, err)
	}
	return row, nil
}

func (s *Store) ListIncome(q ListQuery) ([]*IncomeRow, error) {
	clause, args := listClause("t.date", []string{"t.addIncomeTo"}, q)

	rows, err := s.db.Query(incomeSelect+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query income: %w", err)
	}
	defer rows.Close()

	var income []*IncomeRow
	for rows.Next() {
		row, err := scanIncome(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		income = append(income, row)
	}
	return income, rows.Err()
}

func (s *Store) UpdateIncome(row *IncomeRow) error {
	result, err := s.db.Exec(`
		UPDATE Income
		SET date = ?, name = ?, amount = ?, addIncomeTo = ?, notes = ?,
			timeStamp = ?, currency = ?, currencyAmount = ?
		WHERE key = ?
	`,
		row.Date, row.Name, row.Amount.InexactFloat64(), row.AddIncomeTo, row.Notes,
		row.TimeStamp, row.Currency, row.CurrencyAmount, row.Key,
	)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return checkAffected(result, "income", row.Key)
}

func (s *Store) DeleteIncome(key int64) error {
	result, err := s.db.Exec("DELETE FROM Income WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return checkAffected(result, "income", key)
}

func (s *Store) FindDuplicateIncome(row *IncomeRow) (*IncomeRow, error) {
	var key int64
	err := s.db.QueryRow(`
		SELECT key FROM Income
		WHERE date = ?
		  AND addIncomeTo = ?
		  AND amount = ?
		  AND COALESCE(currency, '') = ?
		  AND name = ?
		  AND COALESCE(notes, '') = ?
		ORDER BY key
		LIMIT 1
	`,
		row.Date, row.AddIncomeTo, row.Amount.InexactFloat64(), row.Currency, row.Name, row.Notes,
	).Scan(&key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check duplicate income: %w", err)
	}
	return s.GetIncome(key)
}
