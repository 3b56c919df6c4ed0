package income

import (
	"github.com/hance08/hb/cmd/transaction"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewIncomeCmd(l *app.Loader) *cobra.Command {
	incomeCmd := &cobra.Command{
		Use:     "income",
		Aliases: []string{"inc"},
		Short:   "Record, show, change and delete income",
	}

	incomeCmd.AddCommand(NewAddCmd(l))
	incomeCmd.AddCommand(NewGetCmd(l))
	incomeCmd.AddCommand(NewListCmd(l))
	incomeCmd.AddCommand(NewUpdateCmd(l))
	incomeCmd.AddCommand(NewDeleteCmd(l))

	return incomeCmd
}

func NewGetCmd(l *app.Loader) *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Aliases: []string{"show"},
		Short:   "Show one income record",
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

			i, err := a.Service.Transaction.GetIncome(cmd.Context(), key)
			if err != nil {
				return err
			}
			base, err := a.Service.Reference.BaseCurrency()
			if err != nil {
				return err
			}
			return views.RenderIncomeDetail(i, base)
		},
	}
}

func NewListCmd(l *app.Loader) *cobra.Command {
	flags := &transaction.ListFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List income, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.Filter()
			if err != nil {
				return err
			}
			a, err := l.App()
			if err != nil {
				return err
			}

			items, err := a.Service.Transaction.ListIncome(cmd.Context(), filter)
			if err != nil {
				return err
			}
			base, err := a.Service.Reference.BaseCurrency()
			if err != nil {
				return err
			}
			return views.RenderIncomeList(items, base)
		},
	}

	flags.Bind(cmd)
	return cmd
}
