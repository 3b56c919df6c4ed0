package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/hance08/hb/internal/model"
)

// PromptAccountSelection shows accounts with their currency and returns
// the chosen account. Accounts named in exclude are left out.
func PromptAccountSelection(accounts []*model.Account, message string, exclude ...string) (*model.Account, error) {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}

	var opts []huh.Option[int64]
	byKey := make(map[int64]*model.Account)
	for _, acc := range accounts {
		if skip[acc.Name] {
			continue
		}
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", acc.Name, acc.Currency), acc.Key))
		byKey[acc.Key] = acc
	}

	if len(opts) == 0 {
		return nil, fmt.Errorf("no accounts available")
	}

	var selected int64
	err := huh.NewSelect[int64]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Height(15).
		Run()

	if err != nil {
		return nil, err
	}

	return byKey[selected], nil
}
