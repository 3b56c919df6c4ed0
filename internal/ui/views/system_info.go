package views

import (
	"github.com/hance08/hb/internal/ui"
	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath   string
	DBPath       string
	DBExists     bool // true = Found, false = Not Found
	BaseCurrency string
	AppDataDir   string
	ForexEnabled bool
	SyncEnabled  bool
	UIControl    bool
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (run hb init)")
	}

	baseCurrency := data.BaseCurrency
	if baseCurrency == "" {
		baseCurrency = "(from database Settings)"
	}

	ui.PrintL1Title("hb")

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"Base Currency", baseCurrency},
		{"AppData Directory", data.AppDataDir},
		{"Forex Lookup", onOff(data.ForexEnabled)},
		{"Sync Queue", onOff(data.SyncEnabled)},
		{"UI Control", onOff(data.UIControl)},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}

func onOff(v bool) string {
	if v {
		return pterm.Green("on")
	}
	return pterm.Gray("off")
}
