package app

import (
	"github.com/hance08/hb/internal/config"
	"github.com/hance08/hb/internal/logger"
	"github.com/rs/zerolog"
)

// Loader defers opening the database until a command needs it. The root
// command configures it once flags and config are parsed.
type Loader struct {
	Config *config.Config
	Logger zerolog.Logger

	app     *App
	cleanup func()
}

func NewLoader() *Loader {
	return &Loader{
		Config: config.NewDefault(),
		Logger: zerolog.Nop(),
	}
}

func (l *Loader) Configure(cfg *config.Config) {
	l.Config = cfg
	l.Logger = logger.Configure(cfg.Log.Level, cfg.Log.Console)
}

// App opens the application on first use and returns the same instance
// afterwards.
func (l *Loader) App() (*App, error) {
	if l.app != nil {
		return l.app, nil
	}

	a, cleanup, err := NewApp(l.Config, l.Logger)
	if err != nil {
		return nil, err
	}
	l.app = a
	l.cleanup = cleanup
	return a, nil
}

func (l *Loader) Close() {
	if l.cleanup != nil {
		l.cleanup()
		l.cleanup = nil
	}
	l.app = nil
}
