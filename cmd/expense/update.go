package expense

import (
	"github.com/hance08/hb/cmd/transaction"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type updateFlags struct {
	Date        string
	Category    string
	SubCategory string
	Notes       string
	Money       transaction.MoneyFlags
}

func NewUpdateCmd(l *app.Loader) *cobra.Command {
	flags := &updateFlags{}

	cmd := &cobra.Command{
		Use:     "update <key>",
		Aliases: []string{"edit"},
		Short:   "Change fields of an expense",
		Long: `Change fields of an expense. Only the flags given are changed.

Changing the category clears the subcategory unless --subcategory is also given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := transaction.ParseKey(args[0])
			if err != nil {
				return err
			}
			upd, err := flags.update(cmd)
			if err != nil {
				return err
			}
			a, err := l.App()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var e *model.Expense
			err = transaction.Write(ctx, a, func() error {
				var err error
				e, err = a.Service.Transaction.UpdateExpense(ctx, key, upd)
				return err
			})
			if err != nil {
				return err
			}

			pterm.Success.Printf("Expense #%d updated\n", e.Key)
			base, err := a.Service.Reference.BaseCurrency()
			if err != nil {
				return err
			}
			return views.RenderExpenseDetail(e, base)
		},
	}

	cmd.Flags().StringVarP(&flags.Date, "date", "d", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.Category, "category", "", "New category")
	cmd.Flags().StringVar(&flags.SubCategory, "subcategory", "", "New subcategory, empty to clear")
	cmd.Flags().StringVarP(&flags.Notes, "notes", "n", "", "New notes, empty to clear")
	flags.Money.Bind(cmd)

	return cmd
}

func (f *updateFlags) update(cmd *cobra.Command) (model.ExpenseUpdate, error) {
	date, err := transaction.ChangedDate(cmd, "date", f.Date)
	if err != nil {
		return model.ExpenseUpdate{}, err
	}
	money, err := f.Money.Input()
	if err != nil {
		return model.ExpenseUpdate{}, err
	}

	return model.ExpenseUpdate{
		Date:        date,
		Category:    transaction.Changed(cmd, "category", f.Category),
		SubCategory: transaction.Changed(cmd, "subcategory", f.SubCategory),
		Notes:       transaction.Changed(cmd, "notes", f.Notes),
		Money:       money,
	}, nil
}
