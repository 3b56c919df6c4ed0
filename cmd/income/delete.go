package income

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
		Short:   "Delete an income record",
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

			i, err := a.Service.Transaction.GetIncome(ctx, key)
			if err != nil {
				return err
			}
			base, err := a.Service.Reference.BaseCurrency()
			if err != nil {
				return err
			}

			ok, err := transaction.ConfirmDelete("income", key, views.IncomeRows(i, base), yes)
			if err != nil || !ok {
				return err
			}

			err = transaction.Write(ctx, a, func() error {
				return a.Service.Transaction.DeleteIncome(ctx, key)
			})
			if err != nil {
				return err
			}

			views.RenderDeleteSuccess("Income", key)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}
