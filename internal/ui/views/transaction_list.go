package views

import (
	"fmt"
	"time"

	"github.com/hance08/hb/internal/constants"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/utils"
	"github.com/pterm/pterm"
)

const notesWidth = 30

func RenderExpenseList(items []*model.Expense, base string) error {
	if len(items) == 0 {
		pterm.Warning.Println("No expenses found")
		return nil
	}

	pterm.DefaultSection.Println("Expenses")
	tableData := pterm.TableData{
		{"Key", "Date", "Account", "Category", "Subcategory", "Amount", "Original", "Notes"},
	}
	for _, e := range items {
		tableData = append(tableData, []string{
			fmt.Sprint(e.Key),
			e.Date.Format(constants.DateFormat),
			e.Account,
			e.Category,
			utils.OrDash(e.SubCategory),
			pterm.Red(utils.FormatMoney(e.Amount, base)),
			foreign(e.Money, base),
			utils.Truncate(e.Notes, notesWidth),
		})
	}
	return renderList(tableData, len(items), "expenses")
}

func RenderIncomeList(items []*model.Income, base string) error {
	if len(items) == 0 {
		pterm.Warning.Println("No income found")
		return nil
	}

	pterm.DefaultSection.Println("Income")
	tableData := pterm.TableData{
		{"Key", "Date", "Account", "Name", "Amount", "Original", "Notes"},
	}
	for _, i := range items {
		tableData = append(tableData, []string{
			fmt.Sprint(i.Key),
			i.Date.Format(constants.DateFormat),
			i.Account,
			i.Name,
			pterm.Green(utils.FormatMoney(i.Amount, base)),
			foreign(i.Money, base),
			utils.Truncate(i.Notes, notesWidth),
		})
	}
	return renderList(tableData, len(items), "income records")
}

// RenderTransferList shows the sending amount; the receiving side is in
// the detail view.
func RenderTransferList(items []*model.Transfer) error {
	if len(items) == 0 {
		pterm.Warning.Println("No transfers found")
		return nil
	}

	pterm.DefaultSection.Println("Transfers")
	tableData := pterm.TableData{
		{"Key", "Date", "From", "To", "Sent", "Rate", "Notes"},
	}
	for _, t := range items {
		tableData = append(tableData, []string{
			fmt.Sprint(t.Key),
			t.Date.Format(constants.DateFormat),
			t.FromAccount,
			t.ToAccount,
			pterm.Blue(utils.FormatMoney(t.CurrencyAmount, t.Currency)),
			utils.FormatRate(t.ExchangeRate),
			utils.Truncate(t.Notes, notesWidth),
		})
	}
	return renderList(tableData, len(items), "transfers")
}

func foreign(m model.Money, base string) string {
	if m.Currency == "" || m.Currency == base {
		return "-"
	}
	return utils.FormatMoney(m.CurrencyAmount, m.Currency)
}

func renderList(tableData pterm.TableData, n int, noun string) error {
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d %s\n", n, noun)
	return nil
}

const (
	ActivityExpense  = "Expense"
	ActivityIncome   = "Income"
	ActivityTransfer = "Transfer"
)

// ActivityItem is one row of the combined listing.
type ActivityItem struct {
	Key         int64
	Date        time.Time
	Type        string
	Account     string
	Description string
	Amount      string
}

func RenderActivityList(items []ActivityItem, limit int) error {
	if len(items) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("Showing recent transactions (limit: %d)", limit)

	tableData := pterm.TableData{
		{"Key", "Date", "Type", "Account", "Description", "Amount"},
	}

	for _, item := range items {
		var coloredType, coloredAmount string

		switch item.Type {
		case ActivityExpense:
			coloredType = pterm.Red(item.Type)
			coloredAmount = pterm.Red(item.Amount)
		case ActivityIncome:
			coloredType = pterm.Green(item.Type)
			coloredAmount = pterm.Green(item.Amount)
		default:
			coloredType = pterm.Blue(item.Type)
			coloredAmount = pterm.Blue(item.Amount)
		}

		tableData = append(tableData, []string{
			fmt.Sprint(item.Key),
			item.Date.Format(constants.DateFormat),
			coloredType,
			item.Account,
			utils.Truncate(item.Description, notesWidth),
			coloredAmount,
		})
	}

	return renderList(tableData, len(items), "transactions")
}
