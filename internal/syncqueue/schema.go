package syncqueue

import (
	"fmt"

	"github.com/hance08/hb/internal/device"
)

const (
	OpAddExpense     = "AddExpense"
	OpUpdateExpense  = "UpdateExpense"
	OpDeleteExpense  = "DeleteExpense"
	OpAddIncome      = "AddIncome"
	OpUpdateIncome   = "UpdateIncome"
	OpDeleteIncome   = "DeleteIncome"
	OpAddTransfer    = "AddTransfer"
	OpUpdateTransfer = "UpdateTransfer"
	OpDeleteTransfer = "DeleteTransfer"
)

// Snapshot is the current state of one transaction in the form payloads
// need it: formatted strings and resolved identities.
type Snapshot struct {
	Key            int64
	TimeStamp      string
	Date           string
	Amount         string
	Currency       string
	CurrencyAmount string
	Notes          string
	Name           string
	RecurringKey   int64

	Account     EntityRef
	FromAccount EntityRef
	ToAccount   EntityRef
	Category    EntityRef
	SubCategory EntityRef
	Payee       EntityRef
}

// EntityRef is a reference row key together with its identity pair.
type EntityRef struct {
	Key    int64
	Device device.Identity
}

// KeyStyle is how the transaction key is written.
type KeyStyle int

const (
	KeySingular KeyStyle = iota
	KeyArray
)

type fieldSpec struct {
	name  string
	value func(primary device.Identity, s *Snapshot) any
}

// OperationSchema describes the exact field list of one operation.
type OperationSchema struct {
	Operation string
	KeyField  string
	KeyStyle  KeyStyle
	fields    []fieldSpec
}

func (sc OperationSchema) FieldNames() []string {
	names := make([]string, len(sc.fields))
	for i, f := range sc.fields {
		names[i] = f.name
	}
	return names
}

func constant(name string, v func(s *Snapshot) any) fieldSpec {
	return fieldSpec{name: name, value: func(_ device.Identity, s *Snapshot) any { return v(s) }}
}

func entityFields(prefix string, ref func(s *Snapshot) EntityRef) []fieldSpec {
	return []fieldSpec{
		constant(prefix+"DeviceKey", func(s *Snapshot) any { return ref(s).Device.Key }),
		constant(prefix+"DeviceId", func(s *Snapshot) any { return ref(s).Device.ID }),
	}
}

func header(op, keyField string, style KeyStyle) []fieldSpec {
	key := constant(keyField, func(s *Snapshot) any { return s.Key })
	if style == KeyArray {
		key = constant(keyField, func(s *Snapshot) any { return []any{s.Key} })
	}
	return []fieldSpec{
		constant(OperationField, func(*Snapshot) any { return op }),
		key,
		{name: "deviceId", value: func(primary device.Identity, _ *Snapshot) any { return primary.ID }},
	}
}

func amountFields() []fieldSpec {
	return []fieldSpec{
		constant("amount", func(s *Snapshot) any { return s.Amount }),
		constant("currency", func(s *Snapshot) any { return s.Currency }),
		constant("currencyAmount", func(s *Snapshot) any { return s.CurrencyAmount }),
		constant("notesString", func(s *Snapshot) any { return s.Notes }),
		constant("recurringKey", func(s *Snapshot) any { return s.RecurringKey }),
	}
}

func join(parts ...[]fieldSpec) []fieldSpec {
	var out []fieldSpec
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func expenseSchema(op string, style KeyStyle) OperationSchema {
	keyField := "deviceKey"
	if style == KeyArray {
		keyField = "expenseDeviceKeys"
	}
	return OperationSchema{
		Operation: op,
		KeyField:  keyField,
		KeyStyle:  style,
		fields: join(
			header(op, keyField, style),
			[]fieldSpec{
				constant("timeStamp", func(s *Snapshot) any { return s.TimeStamp }),
				constant("expenseDateString", func(s *Snapshot) any { return s.Date }),
			},
			entityFields("account", func(s *Snapshot) EntityRef { return s.Account }),
			entityFields("category", func(s *Snapshot) EntityRef { return s.Category }),
			entityFields("subcategory", func(s *Snapshot) EntityRef { return s.SubCategory }),
			entityFields("payee", func(s *Snapshot) EntityRef { return s.Payee }),
			amountFields(),
		),
	}
}

func incomeSchema(op string) OperationSchema {
	return OperationSchema{
		Operation: op,
		KeyField:  "deviceKey",
		KeyStyle:  KeySingular,
		fields: join(
			header(op, "deviceKey", KeySingular),
			[]fieldSpec{
				constant("timeStamp", func(s *Snapshot) any { return s.TimeStamp }),
				constant("incomeDateString", func(s *Snapshot) any { return s.Date }),
			},
			entityFields("account", func(s *Snapshot) EntityRef { return s.Account }),
			[]fieldSpec{constant("name", func(s *Snapshot) any { return s.Name })},
			amountFields(),
		),
	}
}

func transferSchema(op string) OperationSchema {
	return OperationSchema{
		Operation: op,
		KeyField:  "deviceKey",
		KeyStyle:  KeySingular,
		fields: join(
			header(op, "deviceKey", KeySingular),
			[]fieldSpec{
				constant("timeStamp", func(s *Snapshot) any { return s.TimeStamp }),
				constant("transferDateString", func(s *Snapshot) any { return s.Date }),
			},
			entityFields("fromAccount", func(s *Snapshot) EntityRef { return s.FromAccount }),
			entityFields("toAccount", func(s *Snapshot) EntityRef { return s.ToAccount }),
			amountFields(),
		),
	}
}

// deleteSchema carries nothing beyond the tag, the key and the primary
// device; the consumer rejects delete records with any other field.
func deleteSchema(op string) OperationSchema {
	return OperationSchema{
		Operation: op,
		KeyField:  "deviceKey",
		KeyStyle:  KeySingular,
		fields:    header(op, "deviceKey", KeySingular),
	}
}

var schemas = map[string]OperationSchema{
	OpAddExpense:     expenseSchema(OpAddExpense, KeyArray),
	OpUpdateExpense:  expenseSchema(OpUpdateExpense, KeySingular),
	OpDeleteExpense:  deleteSchema(OpDeleteExpense),
	OpAddIncome:      incomeSchema(OpAddIncome),
	OpUpdateIncome:   incomeSchema(OpUpdateIncome),
	OpDeleteIncome:   deleteSchema(OpDeleteIncome),
	OpAddTransfer:    transferSchema(OpAddTransfer),
	OpUpdateTransfer: transferSchema(OpUpdateTransfer),
	OpDeleteTransfer: deleteSchema(OpDeleteTransfer),
}

func Schema(op string) (OperationSchema, bool) {
	s, ok := schemas[op]
	return s, ok
}

// Operations lists every supported operation tag.
func Operations() []string {
	return []string{
		OpAddExpense, OpUpdateExpense, OpDeleteExpense,
		OpAddIncome, OpUpdateIncome, OpDeleteIncome,
		OpAddTransfer, OpUpdateTransfer, OpDeleteTransfer,
	}
}

// Build assembles the payload of op for the given snapshot.
func Build(op string, primary device.Identity, s Snapshot) (Payload, error) {
	schema, ok := schemas[op]
	if !ok {
		return Payload{}, fmt.Errorf("unknown sync operation %q", op)
	}
	if s.Key <= 0 {
		return Payload{}, fmt.Errorf("%s: record key is not set", op)
	}
	if primary.ID == "" {
		return Payload{}, fmt.Errorf("%s: primary device id is empty", op)
	}

	p := Payload{Operation: op, Fields: make([]Field, 0, len(schema.fields))}
	for _, f := range schema.fields {
		p.Fields = append(p.Fields, Field{Name: f.name, Value: f.value(primary, &s)})
	}
	return p, nil
}
