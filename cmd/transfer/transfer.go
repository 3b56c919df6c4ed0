package transfer

import (
	"context"

	"github.com/hance08/hb/cmd/transaction"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewTransferCmd(l *app.Loader) *cobra.Command {
	transferCmd := &cobra.Command{
		Use:     "transfer",
		Aliases: []string{"tr"},
		Short:   "Record, show, change and delete transfers between accounts",
	}

	transferCmd.AddCommand(NewAddCmd(l))
	transferCmd.AddCommand(NewGetCmd(l))
	transferCmd.AddCommand(NewListCmd(l))
	transferCmd.AddCommand(NewUpdateCmd(l))
	transferCmd.AddCommand(NewDeleteCmd(l))

	return transferCmd
}

func NewGetCmd(l *app.Loader) *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Aliases: []string{"show"},
		Short:   "Show one transfer",
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

			t, err := a.Service.Transaction.GetTransfer(cmd.Context(), key)
			if err != nil {
				return err
			}
			return render(cmd.Context(), a, t)
		},
	}
}

func NewListCmd(l *app.Loader) *cobra.Command {
	flags := &transaction.ListFlags{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transfers, newest first",
		Long:    `List transfers, newest first. --account matches either side.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.Filter()
			if err != nil {
				return err
			}
			a, err := l.App()
			if err != nil {
				return err
			}

			items, err := a.Service.Transaction.ListTransfers(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return views.RenderTransferList(items)
		},
	}

	flags.Bind(cmd)
	return cmd
}

func render(ctx context.Context, a *app.App, t *model.Transfer) error {
	to, err := a.Service.Account.GetAccount(ctx, t.ToAccount)
	if err != nil {
		return err
	}
	return views.RenderTransferDetail(t, to.Currency)
}
