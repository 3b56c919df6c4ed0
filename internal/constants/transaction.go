package constants

const (
	// Transaction kinds
	KindExpense  = "expense"
	KindIncome   = "income"
	KindTransfer = "transfer"

	// Date layouts used by the companion schema
	DateFormat      = "2006-01-02"
	TimeStampFormat = "2006-01-02 15:04:05"
)

// AccountTrans.transType values.
const (
	TransTypeBalance     = 0
	TransTypeExpense     = 1
	TransTypeIncome      = 2
	TransTypeTransferOut = 3
	TransTypeTransferIn  = 4
)
