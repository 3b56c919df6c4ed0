package views

import (
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/ui"
	"github.com/pterm/pterm"
)

func RenderExpenseDetail(e *model.Expense, base string) error {
	return renderDetail("Expense", ExpenseRows(e, base), e.DeviceKey, e.TimeStamp)
}

func RenderIncomeDetail(i *model.Income, base string) error {
	return renderDetail("Income", IncomeRows(i, base), i.DeviceKey, i.TimeStamp)
}

func RenderTransferDetail(t *model.Transfer, toCurrency string) error {
	return renderDetail("Transfer", TransferRows(t, toCurrency), t.DeviceKey, t.TimeStamp)
}

func renderDetail(title string, rows pterm.TableData, deviceKey int64, timeStamp string) error {
	pterm.Println()
	ui.PrintL2Title("%s Info", title)

	data := append(pterm.TableData{{"Field", "Value"}}, rows...)
	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(data).
		Render(); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("Sync")
	syncData := pterm.TableData{
		{"Device key", pterm.Sprint(deviceKey)},
		{"Time stamp", timeStamp},
	}
	return pterm.DefaultTable.WithData(syncData).Render()
}
