package views

import (
	"github.com/hance08/hb/internal/ui"
	"github.com/pterm/pterm"
)

func RenderDeletePreview(kind string, key int64, rows pterm.TableData) {
	pterm.Warning.Printf("About to delete %s #%d:\n", kind, key)
	pterm.DefaultTable.WithData(rows).Render()
	pterm.Warning.Println("The deletion is queued for the companion devices and cannot be undone!")
}

func RenderDeleteSuccess(kind string, key int64) {
	pterm.Success.Printf("%s #%d deleted successfully\n", kind, key)
	ui.Separator()
}
