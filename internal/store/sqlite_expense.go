package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/constants"
	"github.com/shopspring/decimal"
)

const expenseSelect = `
	SELECT t.key, t.date, COALESCE(t.catKey, 0), COALESCE(t.subCatKey, 0), COALESCE(t.amount, 0),
		COALESCE(t.notes, ''), COALESCE(t.payFrom, 0), COALESCE(t.payeeKey, 0),
		COALESCE(t.deviceIdKey, 0), COALESCE(t.deviceKey, 0), COALESCE(t.timeStamp, ''),
		COALESCE(t.currency, ''), COALESCE(CAST(t.currencyAmount AS TEXT), ''), COALESCE(t.recurringKey, 0),
		COALESCE(a.name, ''), COALESCE(c.name, ''), COALESCE(sc.name, ''), COALESCE(p.name, '')
	FROM Expense t
	LEFT JOIN Account a ON a.key = t.payFrom
	LEFT JOIN Category c ON c.key = t.catKey
	LEFT JOIN SubCategory sc ON sc.key = t.subCatKey
	LEFT JOIN Payee p ON p.key = t.payeeKey`

func scanExpense(scan func(dest ...any) error) (*ExpenseRow, error) {
	row := &ExpenseRow{}
	var amount float64
	err := scan(
		&row.Key, &row.Date, &row.CatKey, &row.SubCatKey, &amount,
		&row.Notes, &row.PayFrom, &row.PayeeKey,
		&row.DeviceIDKey, &row.DeviceKey, &row.TimeStamp,
		&row.Currency, &row.CurrencyAmount, &row.RecurringKey,
		&row.AccountName, &row.CategoryName, &row.SubCategoryName, &row.PayeeName,
	)
	if err != nil {
		return nil, err
	}
	row.Amount = decimal.NewFromFloat(amount)
	return row, nil
}

// InsertExpense writes the row with the companion application's column
// defaults. It does not touch AccountTrans.
func (s *Store) InsertExpense(row *ExpenseRow) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO Expense (
			date, catKey, subCatKey, amount, periods, notes, isDetailEntry, masterKey,
			includesReceipt, payFrom, payeeKey, billKey, deviceIdKey, deviceKey,
			timeStamp, currency, currencyAmount, recurringKey, isCategorySplit
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		row.Date, row.CatKey, row.SubCatKey, row.Amount.InexactFloat64(),
		constants.DefaultPeriods, row.Notes, constants.DefaultIsDetailEntry, constants.DefaultMasterKey,
		constants.DefaultIncludeReceipt, row.PayFrom, row.PayeeKey, constants.DefaultBillKey,
		row.DeviceIDKey, row.DeviceKey, row.TimeStamp, row.Currency, row.CurrencyAmount,
		row.RecurringKey, constants.DefaultCategorySplit,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert expense: %w", err)
	}

	key, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return key, nil
}

func (s *Store) GetExpense(key int64) (*ExpenseRow, error) {
	row, err := scanExpense(s.db.QueryRow(expenseSelect+" WHERE t.key = ?", key).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("expense", key)
		}
		return nil, fmt.Errorf("failed to query expense %d: %w", key, err)
	}
	return row, nil
}

func (s *Store) ListExpenses(q ListQuery) ([]*ExpenseRow, error) {
	clause, args := listClause("t.date", []string{"t.payFrom"}, q)

	rows, err := s.db.Query(expenseSelect+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*ExpenseRow
	for rows.Next() {
		row, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, row)
	}
	return expenses, rows.Err()
}

func (s *Store) UpdateExpense(row *ExpenseRow) error {
	result, err := s.db.Exec(`
		UPDATE Expense
		SET date = ?, catKey = ?, subCatKey = ?, amount = ?, notes = ?, payFrom = ?,
			payeeKey = ?, timeStamp = ?, currency = ?, currencyAmount = ?
		WHERE key = ?
	`,
		row.Date, row.CatKey, row.SubCatKey, row.Amount.InexactFloat64(), row.Notes, row.PayFrom,
		row.PayeeKey, row.TimeStamp, row.Currency, row.CurrencyAmount, row.Key,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return checkAffected(result, "expense", row.Key)
}

func (s *Store) DeleteExpense(key int64) error {
	result, err := s.db.Exec("DELETE FROM Expense WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return checkAffected(result, "expense", key)
}

// FindDuplicateExpense returns the first stored expense with the same
// date, account, amount, currency, category, subcategory and notes.
func (s *Store) FindDuplicateExpense(row *ExpenseRow) (*ExpenseRow, error) {
	var key int64
	err := s.db.QueryRow(`
		SELECT key FROM Expense
		WHERE date = ?
		  AND payFrom = ?
		  AND amount = ?
		  AND COALESCE(currency, '') = ?
		  AND catKey = ?
		  AND subCatKey = ?
		  AND COALESCE(notes, '') = ?
		ORDER BY key
		LIMIT 1
	`,
		row.Date, row.PayFrom, row.Amount.InexactFloat64(), row.Currency,
		row.CatKey, row.SubCatKey, row.Notes,
	).Scan(&key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check duplicate expense: %w", err)
	}
	return s.GetExpense(key)
}
