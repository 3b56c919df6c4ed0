// Package transaction holds the flag handling and confirmation steps shared
// by the expense, income and transfer commands.
package transaction

import (
	"context"

	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/ui/prompts"
	"github.com/hance08/hb/internal/uicontrol"
	"github.com/hance08/hb/internal/validation"
	"github.com/spf13/cobra"
)

// MoneyFlags are the amount flags common to every transaction kind.
type MoneyFlags struct {
	Amount         string
	Currency       string
	CurrencyAmount string
	ExchangeRate   string
}

func (f *MoneyFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Amount, "amount", "", "Amount (base currency, or the account currency when no other currency applies)")
	cmd.Flags().StringVar(&f.Currency, "currency", "", "Transaction currency code")
	cmd.Flags().StringVar(&f.CurrencyAmount, "currency-amount", "", "Amount in the transaction currency")
	cmd.Flags().StringVar(&f.ExchangeRate, "exchange-rate", "", "Exchange rate to apply instead of the looked up one")
}

func (f *MoneyFlags) Input() (model.MoneyInput, error) {
	var (
		in  model.MoneyInput
		err error
	)
	if in.Amount, err = validation.ParseAmount("amount", f.Amount); err != nil {
		return in, err
	}
	if in.CurrencyAmount, err = validation.ParseAmount("currency_amount", f.CurrencyAmount); err != nil {
		return in, err
	}
	if in.ExchangeRate, err = validation.ParseAmount("exchange_rate", f.ExchangeRate); err != nil {
		return in, err
	}
	if in.Currency, err = validation.ParseCurrency(f.Currency); err != nil {
		return in, err
	}
	return in, nil
}

// Write runs fn with the companion application closed when ui.control is
// set.
func Write(ctx context.Context, a *app.App, fn func() error) error {
	return uicontrol.Quiesce(ctx, a.UI, a.Logger, fn)
}

// Lookups loads the reference lists the entry wizards choose from.
func Lookups(ctx context.Context, a *app.App) (prompts.Lookups, error) {
	base, err := a.Service.Reference.BaseCurrency()
	if err != nil {
		return prompts.Lookups{}, err
	}
	accounts, err := a.Service.Account.ListAccounts(ctx)
	if err != nil {
		return prompts.Lookups{}, err
	}
	categories, err := a.Service.Reference.ListCategories()
	if err != nil {
		return prompts.Lookups{}, err
	}

	return prompts.Lookups{
		Base:          base,
		Accounts:      accounts,
		Categories:    categories,
		SubCategories: a.Service.Reference.ListSubCategories,
	}, nil
}
