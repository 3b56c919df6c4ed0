// Package syncqueue builds and encodes the records the companion
// application reads from its SyncUpdate table.
package syncqueue

import (
	"fmt"
	"reflect"
)

// OperationField is the JSON key carrying the operation tag.
const OperationField = "Operation"

// Field is one key of a payload. Values are limited to string, int64,
// float64, bool, nil and []any of those, which is what Decode produces.
type Field struct {
	Name  string
	Value any
}

// Payload keeps fields in wire order.
type Payload struct {
	Operation string
	Fields    []Field
}

func (p Payload) Get(name string) (any, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (p Payload) Names() []string {
	names := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		names[i] = f.Name
	}
	return names
}

// Map returns the fields keyed by name, for display.
func (p Payload) Map() map[string]any {
	m := make(map[string]any, len(p.Fields))
	for _, f := range p.Fields {
		m[f.Name] = f.Value
	}
	return m
}

func (p Payload) Equal(other Payload) bool {
	return p.Operation == other.Operation && reflect.DeepEqual(p.Fields, other.Fields)
}

func (p Payload) validate() error {
	if p.Operation == "" {
		return fmt.Errorf("payload has no operation")
	}
	seen := make(map[string]bool, len(p.Fields))
	for _, f := range p.Fields {
		if seen[f.Name] {
			return fmt.Errorf("duplicate field %q", f.Name)
		}
		seen[f.Name] = true
	}
	op, ok := p.Get(OperationField)
	if !ok || op != p.Operation {
		return fmt.Errorf("field %s does not match operation %s", OperationField, p.Operation)
	}
	return nil
}
