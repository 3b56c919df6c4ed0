package transaction

import (
	"github.com/AlecAivazis/survey/v2"
	"github.com/hance08/hb/internal/ui"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/pterm/pterm"
)

// ConfirmDelete shows what is about to be removed and asks for
// confirmation unless yes is set.
func ConfirmDelete(kind string, key int64, rows pterm.TableData, yes bool) (bool, error) {
	views.RenderDeletePreview(kind, key, rows)
	if yes {
		return true, nil
	}

	var confirmation bool
	confirmPrompt := &survey.Confirm{
		Message: "Do you want to delete this " + kind + "?",
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirmation, ui.IconOption()); err != nil {
		return false, err
	}

	if !confirmation {
		pterm.Info.Println("Deletion cancelled")
	}
	return confirmation, nil
}
