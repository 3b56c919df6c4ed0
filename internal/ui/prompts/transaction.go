package prompts

import (
	"fmt"
	"strings"
	"time"

	"github.com/hance08/hb/internal/constants"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/validation"
	"github.com/shopspring/decimal"
)

// Lookups feeds the selection lists of the entry wizards.
type Lookups struct {
	Base          string
	Accounts      []*model.Account
	Categories    []*model.Category
	SubCategories func(category string) ([]*model.SubCategory, error)
}

const noSubCategory = "(none)"

func PromptExpenseInput(l Lookups) (model.ExpenseInput, error) {
	var in model.ExpenseInput

	date, err := promptTransactionDate()
	if err != nil {
		return in, err
	}
	in.Date = date

	acc, err := PromptAccountSelection(l.Accounts, "Paid from account:")
	if err != nil {
		return in, err
	}
	in.Account = acc.Name

	names := make([]string, 0, len(l.Categories))
	for _, c := range l.Categories {
		names = append(names, c.Name)
	}
	in.Category, err = PromptSelect("Category:", names, "")
	if err != nil {
		return in, err
	}

	if l.SubCategories != nil {
		subs, err := l.SubCategories(in.Category)
		if err != nil {
			return in, err
		}
		if len(subs) > 0 {
			options := []string{noSubCategory}
			for _, s := range subs {
				options = append(options, s.Name)
			}
			sub, err := PromptSelect("Subcategory:", options, noSubCategory)
			if err != nil {
				return in, err
			}
			if sub != noSubCategory {
				in.SubCategory = sub
			}
		}
	}

	in.Payee, err = PromptInput("Payee (optional):", "", nil)
	if err != nil {
		return in, err
	}

	in.Money, err = promptAccountMoney(acc.Currency, l.Base)
	if err != nil {
		return in, err
	}

	in.Notes, err = PromptNotes("Notes:")
	return in, err
}

func PromptIncomeInput(l Lookups) (model.IncomeInput, error) {
	var in model.IncomeInput

	date, err := promptTransactionDate()
	if err != nil {
		return in, err
	}
	in.Date = date

	acc, err := PromptAccountSelection(l.Accounts, "Received into account:")
	if err != nil {
		return in, err
	}
	in.Account = acc.Name

	in.Name, err = PromptInput("Income name:", "", func(s string) error {
		return validation.ValidateName("name", s)
	})
	if err != nil {
		return in, err
	}

	in.Money, err = promptAccountMoney(acc.Currency, l.Base)
	if err != nil {
		return in, err
	}

	in.Notes, err = PromptNotes("Notes:")
	return in, err
}

// PromptTransferInput asks for the amount sent, in the sending account's
// currency.
func PromptTransferInput(l Lookups) (model.TransferInput, error) {
	var in model.TransferInput

	date, err := promptTransactionDate()
	if err != nil {
		return in, err
	}
	in.Date = date

	from, err := PromptAccountSelection(l.Accounts, "Transfer from:")
	if err != nil {
		return in, err
	}
	to, err := PromptAccountSelection(l.Accounts, "Transfer to:", from.Name)
	if err != nil {
		return in, err
	}
	in.FromAccount = from.Name
	in.ToAccount = to.Name

	raw, err := PromptAmount("Amount sent:", from.Currency, true)
	if err != nil {
		return in, err
	}
	in.Money.Currency = from.Currency
	if in.Money.CurrencyAmount, err = validation.ParseAmount("currency_amount", raw); err != nil {
		return in, err
	}

	if !strings.EqualFold(from.Currency, to.Currency) {
		in.Money.ExchangeRate, err = promptRate(fmt.Sprintf("%s per %s", to.Currency, from.Currency))
		if err != nil {
			return in, err
		}
	}

	in.Notes, err = PromptNotes("Notes:")
	return in, err
}

func promptTransactionDate() (time.Time, error) {
	raw, err := PromptDate("Date (YYYY-MM-DD):", time.Now().Format(constants.DateFormat))
	if err != nil {
		return time.Time{}, err
	}
	return validation.ParseDate(raw)
}

// promptAccountMoney takes the amount in the account's currency and, for a
// foreign account, an optional rate to the base currency.
func promptAccountMoney(accountCurrency, base string) (model.MoneyInput, error) {
	var money model.MoneyInput

	raw, err := PromptAmount("Amount:", accountCurrency, true)
	if err != nil {
		return money, err
	}
	amount, err := validation.ParseAmount("amount", raw)
	if err != nil {
		return money, err
	}

	if strings.EqualFold(accountCurrency, base) {
		money.Amount = amount
		return money, nil
	}

	money.Currency = accountCurrency
	money.CurrencyAmount = amount
	money.ExchangeRate, err = promptRate(fmt.Sprintf("%s per %s", base, accountCurrency))
	return money, err
}

func promptRate(unit string) (decimal.NullDecimal, error) {
	raw, err := PromptInput(fmt.Sprintf("Exchange rate (%s), empty for the current rate:", unit), "", func(s string) error {
		return validation.ValidateAmount(s)
	})
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return validation.ParseAmount("exchange_rate", raw)
}
