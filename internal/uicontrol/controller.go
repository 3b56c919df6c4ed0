// Package uicontrol closes and reopens the companion desktop application
// around a burst of writes, so it does not hold stale state while the
// database changes underneath it.
package uicontrol

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/hance08/hb/internal/config"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

type Controller interface {
	Close(ctx context.Context) error
	Open(ctx context.Context) error
}

// Noop is used when ui.control is off.
type Noop struct{}

func (Noop) Close(context.Context) error { return nil }
func (Noop) Open(context.Context) error  { return nil }

// Command runs configured shell commands to close and open the application.
// An empty command is skipped.
type Command struct {
	CloseCommand string
	OpenCommand  string
	Timeout      time.Duration
	Logger       zerolog.Logger
}

// New returns a Command controller when ui.control is set, Noop otherwise.
func New(cfg config.UIConfig, log zerolog.Logger) Controller {
	if !cfg.Control {
		return Noop{}
	}
	return &Command{
		CloseCommand: cfg.CloseCommand,
		OpenCommand:  cfg.OpenCommand,
		Timeout:      defaultTimeout,
		Logger:       log,
	}
}

func (c *Command) Close(ctx context.Context) error {
	return c.run(ctx, "close", c.CloseCommand)
}

func (c *Command) Open(ctx context.Context) error {
	return c.run(ctx, "open", c.OpenCommand)
}

func (c *Command) run(ctx context.Context, action, command string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		c.Logger.Debug().Str("action", action).Msg("no ui command configured")
		return nil
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := shell(ctx, command)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ui %s command failed: %w: %s", action, err, strings.TrimSpace(string(out)))
	}

	c.Logger.Debug().Str("action", action).Str("command", command).Msg("ui command finished")
	return nil
}

func shell(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "sh", "-c", command)
}

// Quiesce closes the application, runs fn and reopens it. A failure to
// close aborts before fn runs. A failure to reopen is only logged; the
// result of fn is returned either way.
func Quiesce(ctx context.Context, c Controller, log zerolog.Logger, fn func() error) error {
	if c == nil {
		return fn()
	}

	if err := c.Close(ctx); err != nil {
		return err
	}

	err := fn()

	if openErr := c.Open(ctx); openErr != nil {
		log.Warn().Err(openErr).Msg("failed to reopen the companion application")
	}
	return err
}
