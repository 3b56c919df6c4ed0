package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/hance08/hb/internal/apperr"
	"github.com/shopspring/decimal"
)

const accountColumns = `key, name, accountType, balance, COALESCE(balanceDate, ''), COALESCE(currency, '')`

func scanAccount(scan func(dest ...any) error) (*Account, error) {
	acc := &Account{}
	var balance float64
	if err := scan(&acc.Key, &acc.Name, &acc.Type, &balance, &acc.BalanceDate, &acc.Currency); err != nil {
		return nil, err
	}
	acc.Balance = decimal.NewFromFloat(balance)
	return acc, nil
}

func (s *Store) GetAccountByName(name string) (*Account, error) {
	row := s.db.QueryRow("SELECT "+accountColumns+" FROM Account WHERE name = ?", name)

	acc, err := scanAccount(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("account", name)
		}
		return nil, fmt.Errorf("failed to query account '%s': %w", name, err)
	}
	return acc, nil
}

func (s *Store) GetAccountByKey(key int64) (*Account, error) {
	row := s.db.QueryRow("SELECT "+accountColumns+" FROM Account WHERE key = ?", key)

	acc, err := scanAccount(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("account", key)
		}
		return nil, fmt.Errorf("failed to query account with key %d: %w", key, err)
	}
	return acc, nil
}

func (s *Store) ListAccounts() ([]*Account, error) {
	rows, err := s.db.Query("SELECT " + accountColumns + " FROM Account ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		acc, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (s *Store) GetCategoryByName(name string) (*Category, error) {
	cat := &Category{}
	err := s.db.QueryRow(
		"SELECT key, name, COALESCE(seqNum, 0) FROM Category WHERE name = ?", name,
	).Scan(&cat.Key, &cat.Name, &cat.SeqNum)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("category", name)
		}
		return nil, fmt.Errorf("failed to query category '%s': %w", name, err)
	}
	return cat, nil
}

func (s *Store) ListCategories() ([]*Category, error) {
	rows, err := s.db.Query("SELECT key, name, COALESCE(seqNum, 0) FROM Category ORDER BY seqNum, name")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		cat := &Category{}
		if err := rows.Scan(&cat.Key, &cat.Name, &cat.SeqNum); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

// GetSubCategoryByName looks the name up within one category, since
// subcategory names repeat across categories.
func (s *Store) GetSubCategoryByName(catKey int64, name string) (*SubCategory, error) {
	sub := &SubCategory{}
	err := s.db.QueryRow(
		"SELECT key, catKey, name, COALESCE(seqNum, 0) FROM SubCategory WHERE catKey = ? AND name = ?",
		catKey, name,
	).Scan(&sub.Key, &sub.CatKey, &sub.Name, &sub.SeqNum)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("subcategory", name)
		}
		return nil, fmt.Errorf("failed to query subcategory '%s': %w", name, err)
	}
	return sub, nil
}

func (s *Store) ListSubCategories(catKey int64) ([]*SubCategory, error) {
	rows, err := s.db.Query(
		"SELECT key, catKey, name, COALESCE(seqNum, 0) FROM SubCategory WHERE catKey = ? ORDER BY seqNum, name",
		catKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query subcategories: %w", err)
	}
	defer rows.Close()

	var subs []*SubCategory
	for rows.Next() {
		sub := &SubCategory{}
		if err := rows.Scan(&sub.Key, &sub.CatKey, &sub.Name, &sub.SeqNum); err != nil {
			return nil, fmt.Errorf("failed to scan subcategory: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *Store) GetPayeeByName(name string) (*Payee, error) {
	payee := &Payee{}
	err := s.db.QueryRow("SELECT key, name FROM Payee WHERE name = ?", name).Scan(&payee.Key, &payee.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("payee", name)
		}
		return nil, fmt.Errorf("failed to query payee '%s': %w", name, err)
	}
	return payee, nil
}

func (s *Store) ListCurrencies() ([]*Currency, error) {
	rows, err := s.db.Query(
		"SELECT key, code, COALESCE(name, ''), COALESCE(exchangeRate, 1) FROM Currency ORDER BY code",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	var currencies []*Currency
	for rows.Next() {
		cur := &Currency{}
		var rate float64
		if err := rows.Scan(&cur.Key, &cur.Code, &cur.Name, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		cur.ExchangeRate = decimal.NewFromFloat(rate)
		currencies = append(currencies, cur)
	}
	return currencies, rows.Err()
}

// GetSettingsCurrency returns the home currency recorded by the companion
// application, or "" when Settings is empty.
func (s *Store) GetSettingsCurrency() (string, error) {
	var currency sql.NullString
	err := s.db.QueryRow("SELECT currency FROM Settings ORDER BY key LIMIT 1").Scan(&currency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query settings: %w", err)
	}
	return currency.String, nil
}
