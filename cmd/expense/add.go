package expense

import (
	"context"

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
	Date        string
	Account     string
	Category    string
	SubCategory string
	Payee       string
	Notes       string
	Money       transaction.MoneyFlags
}

type addRunner struct {
	loader *app.Loader
	flags  *addFlags
	cmd    *cobra.Command
}

func NewAddCmd(l *app.Loader) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Long: `Record a new expense.

Without flags an interactive wizard asks for each field.`,
		Example: `  # Base currency expense
  hb expense add --account Wallet --category "Food (Basic)" --subcategory Groceries --amount 25.50

  # Foreign currency, rate looked up
  hb expense add --account Wallet --category Transport --currency USD --currency-amount 10

  # Interactive
  hb expense add`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &addRunner{
				loader: l,
				flags:  flags,
				cmd:    cmd,
			}
			return runner.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.Date, "date", "d", "", "Expense date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&flags.Account, "account", "a", "", "Account paid from")
	cmd.Flags().StringVar(&flags.Category, "category", "", "Category name")
	cmd.Flags().StringVar(&flags.SubCategory, "subcategory", "", "Subcategory name")
	cmd.Flags().StringVar(&flags.Payee, "payee", "", "Payee name")
	cmd.Flags().StringVarP(&flags.Notes, "notes", "n", "", "Notes")
	flags.Money.Bind(cmd)

	return cmd
}

func (r *addRunner) Run() error {
	a, err := r.loader.App()
	if err != nil {
		return err
	}
	ctx := r.cmd.Context()

	var in model.ExpenseInput
	if r.cmd.Flags().NFlag() == 0 {
		in, err = r.prompt(ctx, a)
	} else {
		in, err = r.flags.input()
	}
	if err != nil {
		return err
	}

	var e *model.Expense
	err = transaction.Write(ctx, a, func() error {
		var err error
		e, err = a.Service.Transaction.AddExpense(ctx, in)
		return err
	})
	if err != nil {
		return err
	}

	pterm.Success.Printf("Expense #%d recorded\n", e.Key)
	base, err := a.Service.Reference.BaseCurrency()
	if err != nil {
		return err
	}
	return views.RenderExpenseDetail(e, base)
}

func (r *addRunner) prompt(ctx context.Context, a *app.App) (model.ExpenseInput, error) {
	lookups, err := transaction.Lookups(ctx, a)
	if err != nil {
		return model.ExpenseInput{}, err
	}
	return prompts.PromptExpenseInput(lookups)
}

func (f *addFlags) input() (model.ExpenseInput, error) {
	date, err := validation.ParseDate(f.Date)
	if err != nil {
		return model.ExpenseInput{}, err
	}
	money, err := f.Money.Input()
	if err != nil {
		return model.ExpenseInput{}, err
	}

	return model.ExpenseInput{
		Date:        date,
		Account:     f.Account,
		Category:    f.Category,
		SubCategory: f.SubCategory,
		Payee:       f.Payee,
		Money:       money,
		Notes:       f.Notes,
	}, nil
}
