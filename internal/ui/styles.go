package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	l1Style = pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)
	l2Style = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
)

// PrintL1Title prints a page heading on a cyan band.
func PrintL1Title(format string, a ...any) {
	l1Style.Println(" " + fmt.Sprintf(format, a...) + "   ")
}

// PrintL2Title prints a section heading, used above each table.
func PrintL2Title(format string, a ...any) {
	l2Style.Println("# " + fmt.Sprintf(format, a...))
}

// Separator prints a green separator line to the console.
func Separator() {
	pterm.Println(pterm.Green("----------------------------------------"))
}
