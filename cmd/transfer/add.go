package transfer

import (
	"github.com/hance08/hb/cmd/transaction"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/ui/prompts"
	"github.com/hance08/hb/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type addFlags struct {
	Date  string
	From  string
	To    string
	Notes string
	Money transaction.MoneyFlags
}

func NewAddCmd(l *app.Loader) *cobra.Command {
	flags := &addFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transfer",
		Long: `Record a transfer between two accounts.

--currency-amount is the amount sent in the sending account's currency.
--amount alone is read in the sending currency, or in the receiving
currency when only the receiving account is in the base currency.
Without flags an interactive wizard asks for each field.`,
		Example: `  # Same currency
  hb transfer add --from Wallet --to Bank --amount 200

  # Cross currency with an explicit rate
  hb transfer add --from "EU Account" --to "US Account" --currency-amount 100 --exchange-rate 1.2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := l.App()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var in model.TransferInput
			if cmd.Flags().NFlag() == 0 {
				lookups, err := transaction.Lookups(ctx, a)
				if err != nil {
					return err
				}
				in, err = prompts.PromptTransferInput(lookups)
				if err != nil {
					return err
				}
			} else if in, err = flags.input(); err != nil {
				return err
			}

			var t *model.Transfer
			err = transaction.Write(ctx, a, func() error {
				var err error
				t, err = a.Service.Transaction.AddTransfer(ctx, in)
				return err
			})
			if err != nil {
				return err
			}

			pterm.Success.Printf("Transfer #%d recorded\n", t.Key)
			return render(ctx, a, t)
		},
	}

	cmd.Flags().StringVarP(&flags.Date, "date", "d", "", "Transfer date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&flags.From, "from", "", "Sending account")
	cmd.Flags().StringVar(&flags.To, "to", "", "Receiving account")
	cmd.Flags().StringVarP(&flags.Notes, "notes", "n", "", "Notes")
	flags.Money.Bind(cmd)

	return cmd
}

func (f *addFlags) input() (model.TransferInput, error) {
	date, err := validation.ParseDate(f.Date)
	if err != nil {
		return model.TransferInput{}, err
	}
	money, err := f.Money.Input()
	if err != nil {
		return model.TransferInput{}, err
	}

	return model.TransferInput{
		Date:        date,
		FromAccount: f.From,
		ToAccount:   f.To,
		Money:       money,
		Notes:       f.Notes,
	}, nil
}
