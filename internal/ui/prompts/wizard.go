package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/hb/internal/validation"
)

const otherCurrency = "Other"

// PromptInitCurrency asks for the home currency written to Settings by
// hb init.
func PromptInitCurrency(currDefault string) (string, error) {
	selection := currDefault

	err := huh.NewSelect[string]().
		Title("Set the home currency of the new database:").
		Description("Expense and income amounts are stored in this currency").
		Options(
			huh.NewOption("AUD", "AUD"),
			huh.NewOption("USD", "USD"),
			huh.NewOption("EUR", "EUR"),
			huh.NewOption("GBP", "GBP"),
			huh.NewOption("NZD", "NZD"),
			huh.NewOption("JPY", "JPY"),
			huh.NewOption(otherCurrency, otherCurrency),
		).
		Value(&selection).
		Run()

	if err != nil {
		return "", err
	}

	if selection != otherCurrency {
		return selection, nil
	}

	var customInput string
	err = huh.NewInput().
		Title("Please enter the currency code:").
		Description("Please use the ISO 4217 standard 3-letter currency code.").
		Value(&customInput).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return validation.ValidateName("currency", s)
			}
			return validation.ValidateCurrency(s)
		}).
		Run()

	if err != nil {
		return "", err
	}

	return strings.ToUpper(strings.TrimSpace(customInput)), nil
}
