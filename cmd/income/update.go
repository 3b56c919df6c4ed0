package income

import (
	"github.com/hance08/hb/cmd/transaction"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type updateFlags struct {
	Date  string
	Name  string
	Notes string
	Money transaction.MoneyFlags
}

func NewUpdateCmd(l *app.Loader) *cobra.Command {
	flags := &updateFlags{}

	cmd := &cobra.Command{
		Use:     "update <key>",
		Aliases: []string{"edit"},
		Short:   "Change fields of an income record",
		Args:    cobra.ExactArgs(1),
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
			var i *model.Income
			err = transaction.Write(ctx, a, func() error {
				var err error
				i, err = a.Service.Transaction.UpdateIncome(ctx, key, upd)
				return err
			})
			if err != nil {
				return err
			}

			pterm.Success.Printf("Income #%d updated\n", i.Key)
			base, err := a.Service.Reference.BaseCurrency()
			if err != nil {
				return err
			}
			return views.RenderIncomeDetail(i, base)
		},
	}

	cmd.Flags().StringVarP(&flags.Date, "date", "d", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.Name, "name", "", "New income name")
	cmd.Flags().StringVarP(&flags.Notes, "notes", "n", "", "New notes, empty to clear")
	flags.Money.Bind(cmd)

	return cmd
}

func (f *updateFlags) update(cmd *cobra.Command) (model.IncomeUpdate, error) {
	date, err := transaction.ChangedDate(cmd, "date", f.Date)
	if err != nil {
		return model.IncomeUpdate{}, err
	}
	money, err := f.Money.Input()
	if err != nil {
		return model.IncomeUpdate{}, err
	}

	return model.IncomeUpdate{
		Date:  date,
		Name:  transaction.Changed(cmd, "name", f.Name),
		Notes: transaction.Changed(cmd, "notes", f.Notes),
		Money: money,
	}, nil
}
