package errhandler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/hance08/hb/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"interrupt", terminal.InterruptErr, ExitOK},
		{"validation", apperr.Validation("amount", "must be positive"), ExitValidation},
		{"currency", apperr.CurrencyConstraint("USD", "AUD", "mismatch"), ExitValidation},
		{"duplicate", &apperr.DuplicateError{Kind: "expense", Key: 4}, ExitDuplicate},
		{"not found", fmt.Errorf("get: %w", apperr.NotFound("Expense", 9)), ExitNotFound},
		{"device", &apperr.DeviceConfigurationError{}, ExitSync},
		{"sync", &apperr.SyncEncodingError{Err: errors.New("boom")}, ExitSync},
		{"storage", &apperr.StorageError{Op: "open", Err: errors.New("locked")}, ExitStorage},
		{"other", errors.New("unknown flag"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Duplicate expense", capitalize("duplicate expense"))
	assert.Equal(t, "", capitalize(""))
}
