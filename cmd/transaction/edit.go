package transaction

import (
	"time"

	"github.com/hance08/hb/internal/validation"
	"github.com/spf13/cobra"
)

// Changed returns a pointer to value when the flag was given, so an
// explicit empty string can clear a field.
func Changed(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func ChangedDate(cmd *cobra.Command, name, value string) (*time.Time, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	d, err := validation.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
