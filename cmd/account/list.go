/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/spf13/cobra"
)

type listFlags struct {
	Currency string
}

type ListCommandRunner struct {
	loader *app.Loader
	flags  *listFlags
}

func NewListCmd(l *app.Loader) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all accounts",
		Long: `List all accounts with their currency and the opening balance
recorded by the companion application.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &ListCommandRunner{
				loader: l,
				flags:  flags,
			}
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&flags.Currency, "currency", "", "Only show accounts in this currency")

	return cmd
}

func (r *ListCommandRunner) Run(ctx context.Context) error {
	a, err := r.loader.App()
	if err != nil {
		return err
	}

	accounts, err := a.Service.Account.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	if r.flags.Currency != "" {
		accounts = filterByCurrency(accounts, r.flags.Currency)
	}

	return views.RenderAccountList(accounts)
}

func filterByCurrency(accounts []*model.Account, code string) []*model.Account {
	var filtered []*model.Account
	for _, acc := range accounts {
		if strings.EqualFold(acc.Currency, code) {
			filtered = append(filtered, acc)
		}
	}
	return filtered
}
