/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"sort"

	"github.com/hance08/hb/cmd/transaction"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/hance08/hb/internal/utils"
	"github.com/spf13/cobra"
)

type listRunner struct {
	loader *app.Loader
	flags  *transaction.ListFlags
	cmd    *cobra.Command
}

func NewListCmd(l *app.Loader) *cobra.Command {
	flags := &transaction.ListFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent expenses, income and transfers together",
		Long: `List recent expenses, income and transfers together, newest first.

Use the expense, income and transfer commands for the full columns of
each kind.`,
		Example: `  # Recent activity
  hb list

  # Everything touching one account in January
  hb list --account Wallet --from 2026-01-01 --to 2026-01-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{
				loader: l,
				flags:  flags,
				cmd:    cmd,
			}
			return runner.Run()
		},
	}

	flags.Bind(cmd)
	return cmd
}

func (r *listRunner) Run() error {
	filter, err := r.flags.Filter()
	if err != nil {
		return err
	}
	a, err := r.loader.App()
	if err != nil {
		return err
	}

	items, err := activity(r.cmd.Context(), a, filter)
	if err != nil {
		return err
	}
	return views.RenderActivityList(items, filter.Limit)
}

func activity(ctx context.Context, a *app.App, filter model.ListFilter) ([]views.ActivityItem, error) {
	tx := a.Service.Transaction

	base, err := a.Service.Reference.BaseCurrency()
	if err != nil {
		return nil, err
	}
	expenses, err := tx.ListExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}
	income, err := tx.ListIncome(ctx, filter)
	if err != nil {
		return nil, err
	}
	transfers, err := tx.ListTransfers(ctx, filter)
	if err != nil {
		return nil, err
	}

	var items []views.ActivityItem
	for _, e := range expenses {
		items = append(items, views.ActivityItem{
			Key: e.Key, Date: e.Date, Type: views.ActivityExpense,
			Account: e.Account, Description: e.Category,
			Amount: utils.FormatMoney(e.Amount, base),
		})
	}
	for _, i := range income {
		items = append(items, views.ActivityItem{
			Key: i.Key, Date: i.Date, Type: views.ActivityIncome,
			Account: i.Account, Description: i.Name,
			Amount: utils.FormatMoney(i.Amount, base),
		})
	}
	for _, t := range transfers {
		items = append(items, views.ActivityItem{
			Key: t.Key, Date: t.Date, Type: views.ActivityTransfer,
			Account: t.FromAccount + " -> " + t.ToAccount, Description: t.Notes,
			Amount: utils.FormatMoney(t.CurrencyAmount, t.Currency),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].Key > items[j].Key
	})

	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}
