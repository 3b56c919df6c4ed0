package expense

import (
	"github.com/hance08/hb/cmd/transaction"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewExpenseCmd(l *app.Loader) *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"exp"},
		Short:   "Record, show, change and delete expenses",
		Long: `Record, show, change and delete expenses.

Every change is queued for the companion application's sync client.`,
	}

	expenseCmd.AddCommand(NewAddCmd(l))
	expenseCmd.AddCommand(NewGetCmd(l))
	expenseCmd.AddCommand(NewListCmd(l))
	expenseCmd.AddCommand(NewUpdateCmd(l))
	expenseCmd.AddCommand(NewDeleteCmd(l))

	return expenseCmd
}

func NewGetCmd(l *app.Loader) *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Aliases: []string{"show"},
		Short:   "Show one expense",
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

			e, err := a.Service.Transaction.GetExpense(cmd.Context(), key)
			if err != nil {
				return err
			}
			base, err := a.Service.Reference.BaseCurrency()
			if err != nil {
				return err
			}
			return views.RenderExpenseDetail(e, base)
		},
	}
}

type listRunner struct {
	loader *app.Loader
	flags  *transaction.ListFlags
	cmd    *cobra.Command
}

func NewListCmd(l *app.Loader) *cobra.Command {
	flags := &transaction.ListFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses, newest first",
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

	items, err := a.Service.Transaction.ListExpenses(r.cmd.Context(), filter)
	if err != nil {
		return err
	}
	base, err := a.Service.Reference.BaseCurrency()
	if err != nil {
		return err
	}
	return views.RenderExpenseList(items, base)
}
