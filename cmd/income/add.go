package income

import (
	"github.com/hance08/hb/cmd/transaction"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/ui/prompts"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/hance08/hb/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type addFlags struct {
	Date    string
	Account string
	Name    string
	Notes   string
	Money   transaction.MoneyFlags
}

func NewAddCmd(l *app.Loader) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record new income",
		Long: `Record new income.

Without flags an interactive wizard asks for each field.`,
		Example: `  hb income add --account Bank --name Salary --amount 3200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := l.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var in model.IncomeInput
			if cmd.Flags().NFlag() == 0 {
				lookups, err := transaction.Lookups(ctx, a)
				if err != nil {
					return err
				}
				in, err = prompts.PromptIncomeInput(lookups)
				if err != nil {
					return err
				}
			} else if in, err = flags.input(); err != nil {
				return err
			}

			var i *model.Income
			err = transaction.Write(ctx, a, func() error {
				var err error
				i, err = a.Service.Transaction.AddIncome(ctx, in)
				return err
			})
			if err != nil {
				return err
			}

			pterm.Success.Printf("Income #%d recorded\n", i.Key)
			base, err := a.Service.Reference.BaseCurrency()
			if err != nil {
				return err
			}
			return views.RenderIncomeDetail(i, base)
		},
	}

	cmd.Flags().StringVarP(&flags.Date, "date", "d", "", "Income date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Account received into")
	cmd.Flags().StringVar(&flags.Name, "name", "", "Income name, e.g. Salary")
	cmd.Flags().StringVarP(&flags.Notes, "notes", "n", "", "Notes")
	flags.Money.Bind(cmd)

	return cmd
}

func (f *addFlags) input() (model.IncomeInput, error) {
	date, err := validation.ParseDate(f.Date)
	if err != nil {
		return model.IncomeInput{}, err
	}
	money, err := f.Money.Input()
	if err != nil {
		return model.IncomeInput{}, err
	}

	return model.IncomeInput{
		Date:    date,
		Account: f.Account,
		Name:    f.Name,
		Money:   money,
		Notes:   f.Notes,
	}, nil
}
