package transfer

import (
	"github.com/hance08/hb/cmd/transaction"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewDeleteCmd(l *app.Loader) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"rm"},
		Short:   "Delete a transfer",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := transaction.ParseKey(args[0])
			if err != nil {
				return err
			}
			a, err := l.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			t, err := a.Service.Transaction.GetTransfer(ctx, key)
			if err != nil {
				return err
			}
			to, err := a.Service.Account.GetAccount(ctx, t.ToAccount)
			if err != nil {
				return err
			}

			ok, err := transaction.ConfirmDelete("transfer", key, views.TransferRows(t, to.Currency), yes)
			if err != nil || !ok {
				return err
			}

			err = transaction.Write(ctx, a, func() error {
				return a.Service.Transaction.DeleteTransfer(ctx, key)
			})
			if err != nil {
				return err
			}

			views.RenderDeleteSuccess("Transfer", key)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}
