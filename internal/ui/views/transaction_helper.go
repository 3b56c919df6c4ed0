package views

import (
	"fmt"

	"github.com/hance08/hb/internal/constants"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/utils"
	"github.com/pterm/pterm"
)

// ExpenseRows lists the fields of an expense as label/value pairs.
func ExpenseRows(e *model.Expense, base string) pterm.TableData {
	return pterm.TableData{
		{"Key", fmt.Sprint(e.Key)},
		{"Date", e.Date.Format(constants.DateFormat)},
		{"Account", e.Account},
		{"Category", e.Category},
		{"Subcategory", utils.OrDash(e.SubCategory)},
		{"Payee", utils.OrDash(e.Payee)},
		{"Amount", utils.FormatMoney(e.Amount, base)},
		{"Currency amount", utils.FormatMoney(e.CurrencyAmount, e.Currency)},
		{"Exchange rate", utils.FormatRate(e.ExchangeRate)},
		{"Notes", utils.OrDash(e.Notes)},
	}
}

func IncomeRows(i *model.Income, base string) pterm.TableData {
	return pterm.TableData{
		{"Key", fmt.Sprint(i.Key)},
		{"Date", i.Date.Format(constants.DateFormat)},
		{"Account", i.Account},
		{"Name", i.Name},
		{"Amount", utils.FormatMoney(i.Amount, base)},
		{"Currency amount", utils.FormatMoney(i.CurrencyAmount, i.Currency)},
		{"Exchange rate", utils.FormatRate(i.ExchangeRate)},
		{"Notes", utils.OrDash(i.Notes)},
	}
}

// TransferRows shows the sending side in the transfer currency and the
// receiving side in the destination account's currency.
func TransferRows(t *model.Transfer, toCurrency string) pterm.TableData {
	return pterm.TableData{
		{"Key", fmt.Sprint(t.Key)},
		{"Date", t.Date.Format(constants.DateFormat)},
		{"From", t.FromAccount},
		{"To", t.ToAccount},
		{"Sent", utils.FormatMoney(t.CurrencyAmount, t.Currency)},
		{"Received", utils.FormatMoney(t.Amount, toCurrency)},
		{"Exchange rate", utils.FormatRate(t.ExchangeRate)},
		{"Notes", utils.OrDash(t.Notes)},
	}
}
