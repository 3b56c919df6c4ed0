package expense

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
		Short:   "Delete an expense",
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

			e, err := a.Service.Transaction.GetExpense(ctx, key)
			if err != nil {
				return err
			}
			base, err := a.Service.Reference.BaseCurrency()
			if err != nil {
				return err
			}

			ok, err := transaction.ConfirmDelete("expense", key, views.ExpenseRows(e, base), yes)
			if err != nil || !ok {
				return err
			}

			err = transaction.Write(ctx, a, func() error {
				return a.Service.Transaction.DeleteExpense(ctx, key)
			})
			if err != nil {
				return err
			}

			views.RenderDeleteSuccess("Expense", key)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}
