package store

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// EntityTable names a reference table that carries a device identity pair.
type EntityTable string

const (
	TableAccount     EntityTable = "Account"
	TableCategory    EntityTable = "Category"
	TableSubCategory EntityTable = "SubCategory"
	TablePayee       EntityTable = "Payee"
)

type Account struct {
	Key         int64
	Name        string
	Type        int
	Balance     decimal.Decimal
	BalanceDate string
	Currency    string
}

type Category struct {
	Key    int64
	Name   string
	SeqNum int
}

type SubCategory struct {
	Key    int64
	CatKey int64
	Name   string
	SeqNum int
}

type Payee struct {
	Key  int64
	Name string
}

type Currency struct {
	Key          int64
	Code         string
	Name         string
	ExchangeRate decimal.Decimal
}

type Device struct {
	Key       int64
	DeviceID  string
	Name      string
	IsActive  string
	IsPrimary string
}

// EntityDevice is the raw identity columns of a reference row.
type EntityDevice struct {
	EntityKey   int64
	DeviceIDKey sql.NullInt64
	DeviceKey   sql.NullInt64
}

// Amounts on transaction rows are REAL columns except CurrencyAmount, which
// the companion schema keeps as preformatted text.
type ExpenseRow struct {
	Key            int64
	Date           string
	CatKey         int64
	SubCatKey      int64
	Amount         decimal.Decimal
	Notes          string
	PayFrom        int64
	PayeeKey       int64
	DeviceIDKey    int64
	DeviceKey      int64
	TimeStamp      string
	Currency       string
	CurrencyAmount string
	RecurringKey   int64

	AccountName     string
	CategoryName    string
	SubCategoryName string
	PayeeName       string
}

type IncomeRow struct {
	Key            int64
	Date           string
	Name           string
	Amount         decimal.Decimal
	AddIncomeTo    int64
	Notes          string
	DeviceIDKey    int64
	DeviceKey      int64
	TimeStamp      string
	Currency       string
	CurrencyAmount string
	RecurringKey   int64

	AccountName string
}

type TransferRow struct {
	Key            int64
	TransferDate   string
	FromAccount    int64
	ToAccount      int64
	Amount         decimal.Decimal
	Notes          string
	DeviceIDKey    int64
	DeviceKey      int64
	TimeStamp      string
	Currency       string
	CurrencyAmount string
	RecurringKey   int64

	FromAccountName string
	ToAccountName   string
}

type AccountTrans struct {
	Key         int64
	AccountKey  int64
	TimeStamp   string
	TransType   int
	TransKey    int64
	TransDate   string
	TransAmount decimal.Decimal
	Checked     string
}

type SyncUpdate struct {
	Key        int64
	UpdateType string
	UUID       string
	Payload    string
}

// ListQuery narrows transaction listings. Dates are inclusive
// YYYY-MM-DD strings; empty values are unbounded.
type ListQuery struct {
	Start      string
	End        string
	AccountKey int64
	Limit      int
}

// LedgerTotals sums AccountTrans rows of one account by direction.
type LedgerTotals struct {
	Inflows  decimal.Decimal
	Outflows decimal.Decimal
}
