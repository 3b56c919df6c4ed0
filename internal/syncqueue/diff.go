package syncqueue

import (
	"slices"
	"strconv"
)

// Change is one field that differs between two snapshots.
type Change struct {
	Field string
	Old   string
	New   string
}

// Diff lists the user-visible fields that changed, in a fixed order.
func Diff(before, after Snapshot) []Change {
	pairs := []struct {
		field    string
		was, now string
	}{
		{"date", before.Date, after.Date},
		{"account", key(before.Account), key(after.Account)},
		{"fromAccount", key(before.FromAccount), key(after.FromAccount)},
		{"toAccount", key(before.ToAccount), key(after.ToAccount)},
		{"category", key(before.Category), key(after.Category)},
		{"subcategory", key(before.SubCategory), key(after.SubCategory)},
		{"payee", key(before.Payee), key(after.Payee)},
		{"name", before.Name, after.Name},
		{"amount", before.Amount, after.Amount},
		{"currency", before.Currency, after.Currency},
		{"currencyAmount", before.CurrencyAmount, after.CurrencyAmount},
		{"notes", before.Notes, after.Notes},
	}

	var changes []Change
	for _, p := range pairs {
		if p.was != p.now {
			changes = append(changes, Change{Field: p.field, Old: p.was, New: p.now})
		}
	}
	return changes
}

// Without drops the named fields from changes.
func Without(changes []Change, fields ...string) []Change {
	out := changes[:0:0]
	for _, c := range changes {
		if !slices.Contains(fields, c.Field) {
			out = append(out, c)
		}
	}
	return out
}

func key(r EntityRef) string {
	return strconv.FormatInt(r.Key, 10)
}
