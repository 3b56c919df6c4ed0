package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/hance08/hb/internal/constants"
	"github.com/shopspring/decimal"
)

func (s *Store) InsertAccountTrans(entry *AccountTrans) (int64, error) {
	checked := entry.Checked
	if checked == "" {
		checked = constants.DefaultChecked
	}

	result, err := s.db.Exec(`
		INSERT INTO AccountTrans (
			accountKey, timeStamp, transType, transKey, transDate, transAmount, checked
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.AccountKey, entry.TimeStamp, entry.TransType, entry.TransKey,
		entry.TransDate, entry.TransAmount.InexactFloat64(), checked,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ledger row (account: %d): %w", entry.AccountKey, err)
	}

	key, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return key, nil
}

// UpdateAccountTrans rewrites the ledger row identified by
// (transType, transKey) in place.
func (s *Store) UpdateAccountTrans(entry *AccountTrans) error {
	result, err := s.db.Exec(`
		UPDATE AccountTrans
		SET accountKey = ?, timeStamp = ?, transDate = ?, transAmount = ?
		WHERE transType = ? AND transKey = ?
	`,
		entry.AccountKey, entry.TimeStamp, entry.TransDate, entry.TransAmount.InexactFloat64(),
		entry.TransType, entry.TransKey,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger row: %w", err)
	}
	return checkAffected(result, "ledger row", entry.TransKey)
}

func (s *Store) DeleteAccountTrans(transKey int64, transTypes ...int) error {
	where, args := transTypeFilter(transKey, transTypes)
	if _, err := s.db.Exec("DELETE FROM AccountTrans"+where, args...); err != nil {
		return fmt.Errorf("failed to delete ledger rows: %w", err)
	}
	return nil
}

func (s *Store) ListAccountTrans(transKey int64, transTypes ...int) ([]*AccountTrans, error) {
	where, args := transTypeFilter(transKey, transTypes)
	rows, err := s.db.Query(`
		SELECT key, accountKey, COALESCE(timeStamp, ''), transType, transKey,
			COALESCE(transDate, ''), COALESCE(transAmount, 0), COALESCE(checked, '')
		FROM AccountTrans`+where+` ORDER BY key`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger rows: %w", err)
	}
	defer rows.Close()

	var entries []*AccountTrans
	for rows.Next() {
		e := &AccountTrans{}
		var amount float64
		if err := rows.Scan(&e.Key, &e.AccountKey, &e.TimeStamp, &e.TransType, &e.TransKey,
			&e.TransDate, &amount, &e.Checked); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		e.TransAmount = decimal.NewFromFloat(amount)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SumAccountTrans totals the ledger rows of one account dated after `after`
// (exclusive, empty for no bound) and up to `upTo` (inclusive).
func (s *Store) SumAccountTrans(accountKey int64, after, upTo string) (*LedgerTotals, error) {
	var inflows, outflows sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT
			SUM(CASE WHEN transType IN (?, ?) THEN transAmount END),
			SUM(CASE WHEN transType IN (?, ?) THEN transAmount END)
		FROM AccountTrans
		WHERE accountKey = ?
		  AND (? = '' OR transDate > ?)
		  AND transDate <= ?
	`,
		constants.TransTypeIncome, constants.TransTypeTransferIn,
		constants.TransTypeExpense, constants.TransTypeTransferOut,
		accountKey, after, after, upTo,
	).Scan(&inflows, &outflows)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger rows: %w", err)
	}

	return &LedgerTotals{
		Inflows:  decimal.NewFromFloat(inflows.Float64),
		Outflows: decimal.NewFromFloat(outflows.Float64),
	}, nil
}

func transTypeFilter(transKey int64, transTypes []int) (string, []any) {
	args := []any{transKey}
	where := " WHERE transKey = ?"
	if len(transTypes) > 0 {
		placeholders := make([]string, len(transTypes))
		for i, t := range transTypes {
			placeholders[i] = "?"
			args = append(args, t)
		}
		where += " AND transType IN (" + strings.Join(placeholders, ", ") + ")"
	}
	return where, args
}
