package store

type Repository interface {
	// Reference Operations
	GetAccountByName(name string) (*Account, error)
	GetAccountByKey(key int64) (*Account, error)
	ListAccounts() ([]*Account, error)
	GetCategoryByName(name string) (*Category, error)
	ListCategories() ([]*Category, error)
	GetSubCategoryByName(catKey int64, name string) (*SubCategory, error)
	ListSubCategories(catKey int64) ([]*SubCategory, error)
	GetPayeeByName(name string) (*Payee, error)
	ListCurrencies() ([]*Currency, error)
	GetSettingsCurrency() (string, error)

	// Device Operations
	ListPrimaryDevices() ([]*Device, error)
	GetDeviceByKey(key int64) (*Device, error)
	GetEntityDevice(table EntityTable, key int64) (*EntityDevice, error)
	NextDeviceKey(table string) (int64, error)

	// Expense Operations
	InsertExpense(row *ExpenseRow) (int64, error)
	GetExpense(key int64) (*ExpenseRow, error)
	ListExpenses(q ListQuery) ([]*ExpenseRow, error)
	UpdateExpense(row *ExpenseRow) error
	DeleteExpense(key int64) error
	FindDuplicateExpense(row *ExpenseRow) (*ExpenseRow, error)

	// Income Operations
	InsertIncome(row *IncomeRow) (int64, error)
	GetIncome(key int64) (*IncomeRow, error)
	ListIncome(q ListQuery) ([]*IncomeRow, error)
	UpdateIncome(row *IncomeRow) error
	DeleteIncome(key int64) error
	FindDuplicateIncome(row *IncomeRow) (*IncomeRow, error)

	// Transfer Operations
	InsertTransfer(row *TransferRow) (int64, error)
	GetTransfer(key int64) (*TransferRow, error)
	ListTransfers(q ListQuery) ([]*TransferRow, error)
	UpdateTransfer(row *TransferRow) error
	DeleteTransfer(key int64) error
	FindDuplicateTransfer(row *TransferRow) (*TransferRow, error)

	// Ledger Operations
	InsertAccountTrans(entry *AccountTrans) (int64, error)
	UpdateAccountTrans(entry *AccountTrans) error
	DeleteAccountTrans(transKey int64, transTypes ...int) error
	ListAccountTrans(transKey int64, transTypes ...int) ([]*AccountTrans, error)
	SumAccountTrans(accountKey int64, after, upTo string) (*LedgerTotals, error)

	// Sync Queue Operations
	InsertSyncUpdate(u *SyncUpdate) (int64, error)
	ListSyncUpdates(afterKey int64, limit int) ([]*SyncUpdate, error)

	ExecTx(fn func(Repository) error) error
	Close() error
}
