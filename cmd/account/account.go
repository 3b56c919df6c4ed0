package account

import (
	"github.com/hance08/hb/internal/app"
	"github.com/spf13/cobra"
)

func NewAccountCmd(l *app.Loader) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Show accounts and their balances",
		Long: `Show accounts and their balances.

Accounts are managed in the companion application; hb only reads them.`,
	}

	accountCmd.AddCommand(NewListCmd(l))
	accountCmd.AddCommand(NewBalanceCmd(l))

	return accountCmd
}
