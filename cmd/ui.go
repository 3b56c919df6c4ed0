package cmd

import (
	"context"
	"time"

	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/ui"
	"github.com/hance08/hb/internal/uicontrol"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewUICmd(l *app.Loader) *cobra.Command {
	uiCmd := &cobra.Command{
		Use:   "ui",
		Short: "Close or open the companion application",
		Long: `Close or open the companion application with the commands configured
under ui.close_command and ui.open_command.`,
	}

	controller := func() *uicontrol.Command {
		return &uicontrol.Command{
			CloseCommand: l.Config.UI.CloseCommand,
			OpenCommand:  l.Config.UI.OpenCommand,
			Logger:       l.Logger,
		}
	}

	uiCmd.AddCommand(uiActionCmd("close", "Close the companion application", l,
		func(ctx context.Context) error { return controller().Close(ctx) }))
	uiCmd.AddCommand(uiActionCmd("open", "Open the companion application", l,
		func(ctx context.Context) error { return controller().Open(ctx) }))

	var settle time.Duration
	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Close and reopen the companion application",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return uicontrol.Quiesce(ctx, controller(), l.Logger, func() error {
				time.Sleep(settle)
				return nil
			})
		},
	}
	refreshCmd.Flags().DurationVar(&settle, "settle", 2*time.Second, "Pause between close and open")
	uiCmd.AddCommand(refreshCmd)

	return uiCmd
}

func uiActionCmd(use, short string, l *app.Loader, action func(context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if l.Config.UI.CloseCommand == "" && l.Config.UI.OpenCommand == "" {
				pterm.Warning.Println("No ui.close_command or ui.open_command configured")
				return nil
			}
			if err := action(cmd.Context()); err != nil {
				return err
			}
			pterm.Success.Printf("Companion application %s command finished\n", use)
			ui.Separator()
			return nil
		},
	}
}
