package account

import (
	"time"

	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/hance08/hb/internal/validation"
	"github.com/spf13/cobra"
)

func NewBalanceCmd(l *app.Loader) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "balance <account>",
		Short: "Show the balance of an account at a date",
		Long: `Show the balance of an account at a date: the opening balance plus
income and transfers in, minus expenses and transfers out, dated after
the opening balance date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var date time.Time
			if at != "" {
				d, err := validation.ParseDate(at)
				if err != nil {
					return err
				}
				date = d
			}

			a, err := l.App()
			if err != nil {
				return err
			}

			balance, err := a.Service.Account.Balance(cmd.Context(), args[0], date)
			if err != nil {
				return err
			}
			return views.RenderAccountBalance(balance)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Balance date (YYYY-MM-DD, default today)")
	return cmd
}
