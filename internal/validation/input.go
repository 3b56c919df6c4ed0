package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/constants"
	"github.com/shopspring/decimal"
)

// ValidateCurrency validates a currency code format
// Accepts both string and any (for survey compatibility)
func ValidateCurrency(val any) error {
	currency, ok := val.(string)
	if !ok {
		return fmt.Errorf("currency code must be a string")
	}

	currency = strings.TrimSpace(strings.ToUpper(currency))
	if currency == "" {
		return nil // Empty is allowed (account currency is used)
	}

	if len(currency) != 3 {
		return fmt.Errorf("currency code must be 3 characters (e.g. USD)")
	}
	for _, c := range currency {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("currency code must contain only letters")
		}
	}
	return nil
}

// ValidateAmount validates a positive decimal typed at a prompt
func ValidateAmount(val any) error {
	input, ok := val.(string)
	if !ok {
		return fmt.Errorf("amount must be a string")
	}
	_, err := ParseAmount("amount", input)
	return err
}

func ValidateDate(val any) error {
	input, ok := val.(string)
	if !ok {
		return fmt.Errorf("date must be a string")
	}
	_, err := ParseDate(input)
	return err
}

// ParseDate accepts YYYY-MM-DD, or "" / "today" for the current day.
func ParseDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "today") {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	d, err := time.Parse(constants.DateFormat, input)
	if err != nil {
		return time.Time{}, apperr.Validation("date", "%q is not a YYYY-MM-DD date", input)
	}
	return d, nil
}

// ParseAmount returns an invalid NullDecimal for empty input.
func ParseAmount(field, input string) (decimal.NullDecimal, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.NullDecimal{}, apperr.Validation(field, "invalid number format %q", input)
	}
	if !d.IsPositive() {
		return decimal.NullDecimal{}, apperr.Validation(field, "must be greater than zero")
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

func ParseCurrency(input string) (string, error) {
	if err := ValidateCurrency(input); err != nil {
		return "", apperr.Validation("currency", "%v", err)
	}
	return strings.TrimSpace(strings.ToUpper(input)), nil
}

// ValidateName checks a required reference name or income name
func ValidateName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validation(field, "can't be empty")
	}
	if len(name) > constants.MaxNameLen {
		return apperr.Validation(field, "too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

func ValidateNotes(notes string) error {
	if len(notes) > constants.MaxNotesLen {
		return apperr.Validation("notes", "too long (max %d characters)", constants.MaxNotesLen)
	}
	return nil
}
