// Package commands implements the mksite subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mksite/internal/config"
	"git.home.luguber.info/inful/mksite/internal/foundation"
)

// Global is passed to every subcommand's Run.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

// NewGlobal returns a Global writing to os.Stdout with the default logger.
func NewGlobal() *Global {
	return &Global{Logger: slog.Default(), Stdout: os.Stdout}
}

// CLI definition & global flags.
type CLI struct {
	Config   string           `short:"c" help:"Configuration file path" default:"mksite.toml"`
	Quiet    bool             `short:"q" help:"Disable all log output"`
	LogLevel string           `name:"log-level" help:"Log level (debug, info, warn, error)" enum:"debug,info,warn,error" default:"info"`
	Verbose  bool             `short:"v" help:"Enable verbose logging (same as --log-level=debug)"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Build the site"`
	Clean   CleanCmd   `cmd:"" help:"Remove the output directory"`
	Init    InitCmd    `cmd:"" help:"Write a default configuration file in the current directory"`
	New     NewCmd     `cmd:"" help:"Create a new project scaffold"`
	Watch   WatchCmd   `cmd:"" help:"Build, then rebuild whenever sources change"`
	Check   CheckCmd   `cmd:"" help:"Report internal links in the output that do not resolve"`
	History HistoryCmd `cmd:"" help:"List recent builds"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	var w io.Writer = os.Stderr
	if c.Quiet {
		w = io.Discard
	}
	slog.SetDefault(NewLogger(w, c.Level()))
	return nil
}

// Level resolves the effective log level from --verbose and --log-level.
func (c *CLI) Level() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return parseLogLevel(c.LogLevel)
}

// NewLogger returns the text logger used by every command.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

var logLevels = foundation.NewNormalizer("log level", map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}, slog.LevelInfo)

func parseLogLevel(s string) slog.Level {
	return logLevels.Normalize(s)
}

// loadConfig loads the configuration named by --config.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.Config)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
