package views

import (
	"fmt"

	"github.com/hance08/hb/internal/constants"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/ui"
	"github.com/hance08/hb/internal/utils"
	"github.com/pterm/pterm"
)

func RenderAccountList(accounts []*model.Account) error {
	if len(accounts) == 0 {
		pterm.Warning.Println("No accounts found")
		return nil
	}

	tableData := pterm.TableData{{"Key", "Name", "Type", "Currency", "Opening balance", "As of"}}
	for _, acc := range accounts {
		balance := utils.FormatMoney(acc.Balance, acc.Currency)
		if acc.Balance.IsNegative() {
			balance = pterm.Red(balance)
		} else {
			balance = pterm.Green(balance)
		}
		tableData = append(tableData, []string{
			fmt.Sprint(acc.Key),
			acc.Name,
			fmt.Sprint(acc.Type),
			acc.Currency,
			balance,
			utils.OrDash(acc.BalanceDate),
		})
	}

	pterm.DefaultSection.Printf("Account List")
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	pterm.Info.Printf("Total: %d accounts\n", len(accounts))
	return nil
}

func RenderAccountBalance(b *model.AccountBalance) error {
	ui.Separator()
	code := b.Account.Currency

	closing := utils.FormatMoney(b.Balance, code)
	if b.Balance.IsNegative() {
		closing = pterm.Red(closing)
	} else {
		closing = pterm.Green(closing)
	}

	tableData := pterm.TableData{
		{pterm.Blue("Account"), b.Account.Name},
		{pterm.Blue("As of"), b.AsOf.Format(constants.DateFormat)},
		{pterm.Blue("Opening"), fmt.Sprintf("%s (%s)", utils.FormatMoney(b.Opening, code), utils.OrDash(b.Account.BalanceDate))},
		{pterm.Blue("Inflows"), utils.FormatMoney(b.Inflows, code)},
		{pterm.Blue("Outflows"), utils.FormatMoney(b.Outflows, code)},
		{pterm.Blue("Balance"), closing},
	}
	if err := pterm.DefaultTable.WithData(tableData).Render(); err != nil {
		return err
	}
	ui.Separator()
	return nil
}
