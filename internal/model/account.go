package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	Key         int64
	Name        string
	Type        int
	Currency    string
	Balance     decimal.Decimal
	BalanceDate string
}

// AccountBalance is the running balance of an account at a point in time.
type AccountBalance struct {
	Account  Account
	AsOf     time.Time
	Opening  decimal.Decimal
	Inflows  decimal.Decimal
	Outflows decimal.Decimal
	Balance  decimal.Decimal
}
