package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyInput is the amount specification a caller supplies. Any subset may
// be set; the currency engine resolves it into a Money value.
type MoneyInput struct {
	Amount         decimal.NullDecimal
	Currency       string
	CurrencyAmount decimal.NullDecimal
	ExchangeRate   decimal.NullDecimal
}

func (m MoneyInput) IsZero() bool {
	return !m.Amount.Valid && !m.CurrencyAmount.Valid && !m.ExchangeRate.Valid && m.Currency == ""
}

// Money is a resolved amount pair. For expenses and income Amount is in the
// base currency. For transfers Amount is the receiving side and
// CurrencyAmount the sending side in Currency, the sending account's currency.
type Money struct {
	Amount         decimal.Decimal
	Currency       string
	CurrencyAmount decimal.Decimal
	ExchangeRate   decimal.Decimal
}

type Expense struct {
	Key         int64
	Date        time.Time
	Account     string
	Category    string
	SubCategory string
	Payee       string
	Money
	Notes     string
	DeviceKey int64
	TimeStamp string
}

type Income struct {
	Key     int64
	Date    time.Time
	Account string
	Name    string
	Money
	Notes     string
	DeviceKey int64
	TimeStamp string
}

type Transfer struct {
	Key         int64
	Date        time.Time
	FromAccount string
	ToAccount   string
	Money
	Notes     string
	DeviceKey int64
	TimeStamp string
}

type ExpenseInput struct {
	Date        time.Time
	Account     string
	Category    string
	SubCategory string
	Payee       string
	Money       MoneyInput
	Notes       string
}

type IncomeInput struct {
	Date    time.Time
	Account string
	Name    string
	Money   MoneyInput
	Notes   string
}

type TransferInput struct {
	Date        time.Time
	FromAccount string
	ToAccount   string
	Money       MoneyInput
	Notes       string
}

// Update types carry only the fields the caller wants to change.
type ExpenseUpdate struct {
	Date        *time.Time
	Category    *string
	SubCategory *string
	Notes       *string
	Money       MoneyInput
}

func (u ExpenseUpdate) IsZero() bool {
	return u.Date == nil && u.Category == nil && u.SubCategory == nil && u.Notes == nil && u.Money.IsZero()
}

type IncomeUpdate struct {
	Date  *time.Time
	Name  *string
	Notes *string
	Money MoneyInput
}

func (u IncomeUpdate) IsZero() bool {
	return u.Date == nil && u.Name == nil && u.Notes == nil && u.Money.IsZero()
}

type TransferUpdate struct {
	Date  *time.Time
	Notes *string
	Money MoneyInput
}

func (u TransferUpdate) IsZero() bool {
	return u.Date == nil && u.Notes == nil && u.Money.IsZero()
}

// ListFilter narrows list queries. Zero values mean unbounded.
type ListFilter struct {
	Start   time.Time
	End     time.Time
	Account string
	Limit   int
}
