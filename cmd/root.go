package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/hb/cmd/account"
	"github.com/hance08/hb/cmd/category"
	"github.com/hance08/hb/cmd/expense"
	"github.com/hance08/hb/cmd/income"
	"github.com/hance08/hb/cmd/sync"
	"github.com/hance08/hb/cmd/transfer"
	"github.com/hance08/hb/internal/app"
	"github.com/hance08/hb/internal/config"
	"github.com/hance08/hb/internal/errhandler"
	"github.com/hance08/hb/internal/logger"
	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "HB"

func Execute() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	loader := app.NewLoader()
	rootCmd := NewRootCmd(loader)

	err := rootCmd.ExecuteContext(context.Background())
	loader.Close()

	if err != nil {
		os.Exit(errhandler.HandleError(err))
	}
}

func NewRootCmd(l *app.Loader) *cobra.Command {
	var cfgFile, dbPath string

	rootCmd := &cobra.Command{
		Use:   "hb",
		Short: "hb records expenses, income and transfers in a HomeBudget database",
		Long: `hb records expenses, income and transfers in a HomeBudget database and
queues every change for the companion application's own sync client.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initConfig(cfgFile)
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}

			l.Configure(cfg)
			cmd.SetContext(logger.WithContext(cmd.Context(), l.Logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides database.path)")

	rootCmd.AddCommand(expense.NewExpenseCmd(l))
	rootCmd.AddCommand(income.NewIncomeCmd(l))
	rootCmd.AddCommand(transfer.NewTransferCmd(l))
	rootCmd.AddCommand(account.NewAccountCmd(l))
	rootCmd.AddCommand(category.NewCategoryCmd(l))
	rootCmd.AddCommand(category.NewCurrencyCmd(l))
	rootCmd.AddCommand(sync.NewSyncCmd(l))

	rootCmd.AddCommand(NewBatchCmd(l))
	rootCmd.AddCommand(NewInitCmd(l))
	rootCmd.AddCommand(NewInfoCmd(l))
	rootCmd.AddCommand(NewListCmd(l))
	rootCmd.AddCommand(NewUICmd(l))

	return rootCmd
}

// initConfig reads .env, the config file and HB_* variables, in rising
// priority, on top of the built-in defaults.
func initConfig(cfgFile string) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return nil, fmt.Errorf("error getting app dir: %w", err)
		}

		v.AddConfigPath(appDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if err := createDefaultConfig(v, appDir); err != nil {
			return nil, fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // allow using environment variables to override

	if err := v.ReadInConfig(); err != nil {

		if cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg := config.NewDefault()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}

	cfg.ConfigPath = v.ConfigFileUsed()

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := config.NewDefault()

	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("defaults.currency", d.Defaults.Currency)

	v.SetDefault("forex.enabled", d.Forex.Enabled)
	v.SetDefault("forex.cache_ttl_hours", d.Forex.CacheTTLHours)
	v.SetDefault("forex.timeout_seconds", d.Forex.TimeoutSeconds)
	v.SetDefault("forex.cache_path", d.Forex.CachePath)
	v.SetDefault("forex.rates", map[string]string{})

	v.SetDefault("sync.enabled", d.Sync.Enabled)
	v.SetDefault("sync.update_type", d.Sync.UpdateType)
	v.SetDefault("sync.compression_level", d.Sync.CompressionLevel)
	v.SetDefault("sync.min_payload_size", d.Sync.MinPayloadSize)

	v.SetDefault("storage.lock_retries", d.Storage.LockRetries)
	v.SetDefault("storage.lock_backoff_ms", d.Storage.LockBackoffMS)
	v.SetDefault("storage.busy_timeout_ms", d.Storage.BusyTimeoutMS)

	v.SetDefault("ui.control", d.UI.Control)
	v.SetDefault("ui.close_command", d.UI.CloseCommand)
	v.SetDefault("ui.open_command", d.UI.OpenCommand)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.console", d.Log.Console)
}

func createDefaultConfig(v *viper.Viper, appDir string) error {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
