package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/hance08/hb/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, ValidateCurrency(""))
	assert.NoError(t, ValidateCurrency("usd"))
	assert.Error(t, ValidateCurrency("US"))
	assert.Error(t, ValidateCurrency("U5D"))
	assert.Error(t, ValidateCurrency(12))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-16")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("16/02/2026")
	assert.Equal(t, apperr.KindValidation, apperr.Kind(err))

	today, err := ParseDate("today")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Day(), today.Day())
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("amount", "25.50")
	require.NoError(t, err)
	assert.True(t, a.Valid)
	assert.Equal(t, "25.5", a.Decimal.String())

	a, err = ParseAmount("amount", " ")
	require.NoError(t, err)
	assert.False(t, a.Valid)

	_, err = ParseAmount("amount", "-3")
	assert.Error(t, err)
	_, err = ParseAmount("amount", "abc")
	assert.Error(t, err)
}

func TestValidateNameAndNotes(t *testing.T) {
	assert.Error(t, ValidateName("account", "  "))
	assert.Error(t, ValidateName("account", strings.Repeat("x", 101)))
	assert.NoError(t, ValidateName("account", "Wallet"))

	assert.NoError(t, ValidateNotes(""))
	assert.Error(t, ValidateNotes(strings.Repeat("n", 501)))
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency(" eur ")
	require.NoError(t, err)
	assert.Equal(t, "EUR", c)

	_, err = ParseCurrency("EURO")
	assert.Error(t, err)
}
