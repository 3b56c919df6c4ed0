package constants

const (
	FlagYes = "Y"
	FlagNo  = "N"
)

// Column defaults written on every new Expense row.
const (
	DefaultPeriods        = 1
	DefaultMasterKey      = -1
	DefaultPayeeKey       = 0
	DefaultBillKey        = 0
	DefaultRecurringKey   = 0
	DefaultCategorySplit  = FlagNo
	DefaultIsDetailEntry  = FlagYes
	DefaultIncludeReceipt = FlagNo
	DefaultChecked        = FlagNo
)

const (
	MaxNameLen  = 100
	MaxNotesLen = 500
)

// UpdateTypeAny is the updateType the companion client itself writes.
const UpdateTypeAny = "Any"
