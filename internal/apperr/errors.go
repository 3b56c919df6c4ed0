// Package apperr defines the typed errors returned by the write pipeline.
// Callers match them with errors.As and report them by Kind.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	KindValidation = "validation"
	KindCurrency   = "currency_constraint"
	KindDuplicate  = "duplicate"
	KindNotFound   = "not_found"
	KindDevice     = "device_configuration"
	KindSync       = "sync_encoding"
	KindStorage    = "storage"
)

// ValidationError reports malformed or contradictory input. It is always
// raised before the store is touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validation(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

type CurrencyConstraintError struct {
	Currency        string
	AccountCurrency string
	Message         string
}

func (e *CurrencyConstraintError) Error() string {
	return e.Message
}

func CurrencyConstraint(currency, accountCurrency, format string, args ...any) error {
	return &CurrencyConstraintError{
		Currency:        currency,
		AccountCurrency: accountCurrency,
		Message:         fmt.Sprintf(format, args...),
	}
}

// DuplicateError carries the stored row that matched the composite key.
type DuplicateError struct {
	Kind   string
	Key    int64
	Fields map[string]string
}

func (e *DuplicateError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, e.Fields[name]))
	}
	return fmt.Sprintf("duplicate %s matches existing key %d (%s)", e.Kind, e.Key, strings.Join(parts, ", "))
}

type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.Ref)
}

func NotFound(entity string, ref any) error {
	return &NotFoundError{Entity: entity, Ref: fmt.Sprint(ref)}
}

// DeviceConfigurationError means the store does not hold exactly one
// active primary device.
type DeviceConfigurationError struct {
	Count int
}

func (e *DeviceConfigurationError) Error() string {
	if e.Count == 0 {
		return "no active primary device found in DeviceInfo"
	}
	return fmt.Sprintf("expected one active primary device, found %d", e.Count)
}

type SyncEncodingError struct {
	Operation string
	Err       error
}

func (e *SyncEncodingError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("sync payload: %v", e.Err)
	}
	return fmt.Sprintf("sync payload %s: %v", e.Operation, e.Err)
}

func (e *SyncEncodingError) Unwrap() error { return e.Err }

type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Kind names the category of err, or "" when err is not one of ours.
func Kind(err error) string {
	var (
		validation *ValidationError
		currency   *CurrencyConstraintError
		duplicate  *DuplicateError
		notFound   *NotFoundError
		device     *DeviceConfigurationError
		syncErr    *SyncEncodingError
		storage    *StorageError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validation):
		return KindValidation
	case errors.As(err, &currency):
		return KindCurrency
	case errors.As(err, &duplicate):
		return KindDuplicate
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &device):
		return KindDevice
	case errors.As(err, &syncErr):
		return KindSync
	case errors.As(err, &storage):
		return KindStorage
	}
	return ""
}
