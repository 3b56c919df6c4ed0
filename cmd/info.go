package cmd

import (
	"os"

	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	loader *app.Loader
}

func NewInfoCmd(l *app.Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, database path, and system details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				loader: l,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	cfg := r.loader.Config

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dbPath, err := app.ResolveDBPath(cfg)
	if err != nil {
		return err
	}

	dbExists := false
	if _, err := os.Stat(dbPath); err == nil {
		dbExists = true
	}

	items := views.SystemInfoItem{
		ConfigPath:   configPath,
		DBPath:       dbPath,
		DBExists:     dbExists,
		BaseCurrency: cfg.Defaults.Currency,
		AppDataDir:   getAppDataDirOrUnknown(),
		ForexEnabled: cfg.Forex.Enabled,
		SyncEnabled:  cfg.Sync.Enabled,
		UIControl:    cfg.UI.Control,
	}

	return views.RenderSystemInfo(items)
}

func getAppDataDirOrUnknown() string {
	dir, err := app.GetAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
