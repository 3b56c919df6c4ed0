package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hance08/hb/internal/config"
	"github.com/hance08/hb/internal/currency"
	"github.com/hance08/hb/internal/forex"
	"github.com/hance08/hb/internal/service"
	"github.com/hance08/hb/internal/store"
	"github.com/hance08/hb/internal/syncqueue"
	"github.com/hance08/hb/internal/uicontrol"
	"github.com/rs/zerolog"
)

const (
	AppName       = "hb"
	DefaultDBName = "homebudget.db"
)

type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Service *service.Service
	Store   *store.Store
	Codec   *syncqueue.Codec
	UI      uicontrol.Controller
	DBPath  string
}

// NewApp opens the companion database and wires the services on top of it.
func NewApp(cfg *config.Config, log zerolog.Logger) (*App, func(), error) {
	dbPath, err := ResolveDBPath(cfg)
	if err != nil {
		return nil, nil, err
	}

	dbStore, err := store.NewStore(dbPath, StoreOptions(cfg, log))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	base := strings.ToUpper(cfg.Defaults.Currency)
	if base == "" {
		base, err = dbStore.GetSettingsCurrency()
		if err != nil {
			dbStore.Close()
			return nil, nil, err
		}
	}

	rates, err := NewRateProvider(cfg, base, log)
	if err != nil {
		dbStore.Close()
		return nil, nil, err
	}

	codec := syncqueue.NewCodec(cfg.Sync.CompressionLevel, cfg.Sync.MinPayloadSize)
	svc := service.NewService(dbStore, cfg, service.Deps{
		Rates:   rates,
		Encoder: codec,
		Logger:  log,
	})

	cleanup := func() {
		if err := dbStore.Close(); err != nil {
			log.Error().Err(err).Msg("error closing database")
		}
	}

	return &App{
		Config:  cfg,
		Logger:  log,
		Service: svc,
		Store:   dbStore,
		Codec:   codec,
		UI:      uicontrol.New(cfg.UI, log),
		DBPath:  dbPath,
	}, cleanup, nil
}

func StoreOptions(cfg *config.Config, log zerolog.Logger) store.Options {
	opts := store.DefaultOptions()
	if cfg.Storage.LockRetries > 0 {
		opts.LockRetries = cfg.Storage.LockRetries
	}
	if cfg.Storage.LockBackoffMS > 0 {
		opts.LockBackoff = time.Duration(cfg.Storage.LockBackoffMS) * time.Millisecond
	}
	if cfg.Storage.BusyTimeoutMS > 0 {
		opts.BusyTimeout = time.Duration(cfg.Storage.BusyTimeoutMS) * time.Millisecond
	}
	opts.Logger = log
	return opts
}

// NewRateProvider layers the static forex.rates table over the network
// provider. With forex disabled unknown codes get a unit rate.
func NewRateProvider(cfg *config.Config, base string, log zerolog.Logger) (currency.RateProvider, error) {
	static, err := forex.ParseRates(cfg.Forex.Rates)
	if err != nil {
		return nil, err
	}

	var next currency.RateProvider
	if cfg.Forex.Enabled {
		cachePath := cfg.Forex.CachePath
		if cachePath == "" {
			appDir, err := GetAppDataDir()
			if err != nil {
				return nil, err
			}
			cachePath = forex.DefaultCachePath(appDir)
		}
		cachePath, err = ExpandPath(cachePath)
		if err != nil {
			return nil, err
		}

		next = forex.NewProvider(forex.Options{
			Base:      base,
			CachePath: cachePath,
			TTL:       time.Duration(cfg.Forex.CacheTTLHours) * time.Hour,
			Timeout:   time.Duration(cfg.Forex.TimeoutSeconds) * time.Second,
			Logger:    log,
		})
	}

	return forex.Static{Rates: static, Next: next}, nil
}

// ResolveDBPath expands database.path, defaulting to the app data dir.
func ResolveDBPath(cfg *config.Config) (string, error) {
	raw := cfg.Database.Path
	if raw == "" {
		appDir, err := GetAppDataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(appDir, DefaultDBName), nil
	}
	return ExpandPath(raw)
}

func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, "."+AppName), nil
	}

	return filepath.Join(configDir, AppName), nil
}

func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
