package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/apperr"
	"github.com/hance08/hb/internal/store"
	"github.com/hance08/hb/internal/ui/prompts"
	"github.com/hance08/hb/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type initFlags struct {
	Currency   string
	DeviceName string
}

func NewInitCmd(l *app.Loader) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty database with the companion schema",
		Long: `Create an empty database with the companion schema, a primary device
and the home currency. Useful for trying hb without touching real data.

The file is taken from --db or database.path and must not exist yet.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := app.ResolveDBPath(l.Config)
			if err != nil {
				return err
			}
			if _, err := os.Stat(dbPath); err == nil {
				return fmt.Errorf("database %s already exists", dbPath)
			} else if !errors.Is(err, os.ErrNotExist) {
				return err
			}

			code := flags.Currency
			if code == "" {
				def := l.Config.Defaults.Currency
				if def == "" {
					def = "AUD"
				}
				if code, err = prompts.PromptInitCurrency(def); err != nil {
					return err
				}
			}
			if code, err = validation.ParseCurrency(code); err != nil {
				return err
			}
			if code == "" {
				return apperr.Validation("currency", "is required")
			}

			s, err := store.Bootstrap(dbPath, app.StoreOptions(l.Config, l.Logger))
			if err != nil {
				return err
			}
			defer s.Close()

			deviceID := uuid.NewString()
			if _, err := s.RegisterPrimaryDevice(deviceID, flags.DeviceName); err != nil {
				return err
			}
			if err := s.SetSettingsCurrency(code); err != nil {
				return err
			}

			pterm.Success.Printf("Created %s\n", dbPath)
			pterm.DefaultTable.WithData(pterm.TableData{
				{"Home currency", code},
				{"Primary device", deviceID},
			}).Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.Currency, "currency", "", "Home currency code (asked when omitted)")
	cmd.Flags().StringVar(&flags.DeviceName, "device-name", "hb", "Name recorded for the primary device")

	return cmd
}
