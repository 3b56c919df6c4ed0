package views

import (
	"fmt"

	"github.com/hance08/hb/internal/model"
	"github.com/pterm/pterm"
)

func RenderCategoryList(categories []*model.Category) error {
	if len(categories) == 0 {
		pterm.Warning.Println("No categories found")
		return nil
	}

	tableData := pterm.TableData{{"Key", "Name", "Order"}}
	for _, c := range categories {
		tableData = append(tableData, []string{fmt.Sprint(c.Key), c.Name, fmt.Sprint(c.SeqNum)})
	}

	pterm.DefaultSection.Println("Categories")
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func RenderSubCategoryList(category string, subs []*model.SubCategory) error {
	if len(subs) == 0 {
		pterm.Warning.Printf("No subcategories under %s\n", category)
		return nil
	}

	tableData := pterm.TableData{{"Key", "Name", "Order"}}
	for _, s := range subs {
		tableData = append(tableData, []string{fmt.Sprint(s.Key), s.Name, fmt.Sprint(s.SeqNum)})
	}

	pterm.DefaultSection.Printf("Subcategories of %s", category)
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

func RenderCurrencyList(currencies []*model.Currency, base string) error {
	if len(currencies) == 0 {
		pterm.Warning.Println("No currencies found")
		return nil
	}

	tableData := pterm.TableData{{"Code", "Name", "Stored rate"}}
	for _, c := range currencies {
		code := c.Code
		if code == base {
			code = pterm.Cyan(code + " (base)")
		}
		tableData = append(tableData, []string{code, c.Name, c.ExchangeRate.String()})
	}

	pterm.DefaultSection.Println("Currencies")
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
