package transaction

import (
	"strings"
	"time"

	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/model"
	"github.com/hance08/hb/internal/validation"
	"github.com/spf13/cobra"
)

type ListFlags struct {
	Start   string
	End     string
	Account string
	Limit   int
}

func (f *ListFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.Start, "from", "", "First date to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.End, "to", "", "Last date to include (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.Account, "account", "a", "", "Filter by account name")
	cmd.Flags().IntVarP(&f.Limit, "limit", "l", 20, "Maximum number of records to display")
}

func (f *ListFlags) Filter() (model.ListFilter, error) {
	filter := model.ListFilter{
		Account: strings.TrimSpace(f.Account),
		Limit:   f.Limit,
	}

	var err error
	if filter.Start, err = optionalDate(f.Start); err != nil {
		return filter, err
	}
	if filter.End, err = optionalDate(f.End); err != nil {
		return filter, err
	}
	if !filter.Start.IsZero() && !filter.End.IsZero() && filter.End.Before(filter.Start) {
		return filter, apperr.Validation("to", "must not be before --from")
	}
	return filter, nil
}

func optionalDate(input string) (time.Time, error) {
	if strings.TrimSpace(input) == "" {
		return time.Time{}, nil
	}
	return validation.ParseDate(input)
}
