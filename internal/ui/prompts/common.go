package prompts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/hb/internal/validation"
)

// PromptNotes prompts for free text notes. Empty is allowed.
func PromptNotes(message string) (string, error) {
	var notes string

	err := huh.NewInput().
		Title(message).
		Value(&notes).
		Validate(validation.ValidateNotes).
		Run()

	return strings.TrimSpace(notes), err
}

// PromptAmount prompts for a positive amount in the given currency
func PromptAmount(message string, code string, required bool) (string, error) {
	var amount string

	help := fmt.Sprintf("Amount in %s", code)
	if !required {
		help += ", leave empty to derive it"
	}

	err := huh.NewInput().
		Title(message).
		Description(help).
		Value(&amount).
		Validate(func(s string) error {
			if required && strings.TrimSpace(s) == "" {
				return fmt.Errorf("amount is required")
			}
			return validation.ValidateAmount(s)
		}).
		Run()

	return strings.TrimSpace(amount), err
}

// PromptConfirm prompts for yes/no confirmation
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	confirm := defaultValue

	err := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()

	return confirm, err
}

// PromptDate prompts for a date in YYYY-MM-DD format
func PromptDate(message string, defaultDate string) (string, error) {
	var date string

	err := huh.NewInput().
		Title(message).
		Description("Press Enter for " + defaultDate).
		Placeholder(defaultDate).
		Value(&date).
		Validate(func(s string) error {
			return validation.ValidateDate(s)
		}).
		Run()

	if err != nil {
		return "", err
	}

	if date == "" {
		return defaultDate, nil
	}
	return date, nil
}

// PromptInput prompts for a generic text input with optional default and validator
func PromptInput(message string, defaultValue string, validator func(string) error) (string, error) {
	var inputVal string

	input := huh.NewInput().
		Title(message).
		Value(&inputVal)

	if defaultValue != "" {
		input.Placeholder(defaultValue)
	}

	if validator != nil {
		input.Validate(validator)
	}

	err := input.Run()
	if err != nil {
		return "", err
	}

	if inputVal == "" && defaultValue != "" {
		return defaultValue, nil
	}

	return strings.TrimSpace(inputVal), nil
}

// PromptSelect prompts for a selection from a list of options
func PromptSelect(message string, options []string, defaultOption string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("nothing to choose for %q", message)
	}

	selected := options[0]
	for _, o := range options {
		if o == defaultOption {
			selected = o
			break
		}
	}

	var opts []huh.Option[string]
	for _, o := range options {
		opts = append(opts, huh.NewOption(o, o))
	}

	err := huh.NewSelect[string]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Height(15).
		Run()

	return selected, err
}
