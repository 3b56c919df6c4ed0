package errhandler

import (
	"errors"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/hb/internal/apperr"
	"github.com/pterm/pterm"
)

const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitDuplicate  = 3
	ExitNotFound   = 4
	ExitSync       = 5
	ExitStorage    = 6
)

// ExitCode maps an error to the process exit status by its kind.
func ExitCode(err error) int {
	if err == nil || IsInterrupt(err) {
		return ExitOK
	}

	switch apperr.Kind(err) {
	case apperr.KindValidation, apperr.KindCurrency:
		return ExitValidation
	case apperr.KindDuplicate:
		return ExitDuplicate
	case apperr.KindNotFound:
		return ExitNotFound
	case apperr.KindDevice, apperr.KindSync:
		return ExitSync
	case apperr.KindStorage:
		return ExitStorage
	}
	return ExitFailure
}

func IsInterrupt(err error) bool {
	return errors.Is(err, terminal.InterruptErr) ||
		errors.Is(err, huh.ErrUserAborted) ||
		strings.Contains(err.Error(), "interrupt")
}

// HandleError prints err and returns the exit code the caller should use.
func HandleError(err error) int {
	if err == nil {
		return ExitOK
	}
	if IsInterrupt(err) {
		pterm.Warning.Println("Operation Cancelled")
		return ExitOK
	}

	pterm.Error.Println(capitalize(err.Error()))

	return ExitCode(err)
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
