package transfer

import (
	"github.com/hance08/hb/cmd/transaction"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/model"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type updateFlags struct {
	Date  string
	Notes string
	Money transaction.MoneyFlags
}

func NewUpdateCmd(l *app.Loader) *cobra.Command {
	flags := &updateFlags{}

	cmd := &cobra.Command{
		Use:     "update <key>",
		Aliases: []string{"edit"},
		Short:   "Change fields of a transfer",
		Long: `Change fields of a transfer. The accounts of a transfer cannot be
changed; delete it and record a new one instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := transaction.ParseKey(args[0])
			if err != nil {
				return err
			}
			date, err := transaction.ChangedDate(cmd, "date", flags.Date)
			if err != nil {
				return err
			}
			money, err := flags.Money.Input()
			if err != nil {
				return err
			}
			a, err := l.App()
			if err != nil {
				return err
			}

			upd := model.TransferUpdate{
				Date:  date,
				Notes: transaction.Changed(cmd, "notes", flags.Notes),
				Money: money,
			}

			ctx := cmd.Context()
			var t *model.Transfer
			err = transaction.Write(ctx, a, func() error {
				var err error
				t, err = a.Service.Transaction.UpdateTransfer(ctx, key, upd)
				return err
			})
			if err != nil {
				return err
			}

			pterm.Success.Printf("Transfer #%d updated\n", t.Key)
			return render(ctx, a, t)
		},
	}

	cmd.Flags().StringVarP(&flags.Date, "date", "d", "", "New date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&flags.Notes, "notes", "n", "", "New notes, empty to clear")
	flags.Money.Bind(cmd)

	return cmd
}
