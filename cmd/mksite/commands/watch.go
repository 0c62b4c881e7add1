package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/mksite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Every    time.Duration `help:"Also rebuild on this interval (e.g. 10m); zero disables"`
	Debounce time.Duration `help:"Quiet period after a change before rebuilding" default:"300ms"`
	Jobs     int           `short:"j" help:"Run up to N transforms in parallel (overrides build.jobs)"`
	Strict   bool          `help:"Fail a build when a transform exits with a non-zero status"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	watcher, err := watch.New(watch.Options{
		Dirs:     []string{cfg.Dirs.Src, cfg.Dirs.Layout, cfg.Dirs.Static},
		Files:    []string{cfg.Path()},
		Exclude:  []string{cfg.Dirs.Out},
		Debounce: w.Debounce,
		Every:    w.Every,
		Logger:   g.Logger,
	}, w.build(g, root))
	if err != nil {
		return err
	}
	g.Logger.Info("Watching for changes", "src", cfg.Dirs.Src, "layout", cfg.Dirs.Layout, "static", cfg.Dirs.Static)
	return watcher.Run(ctx)
}

// build reloads the configuration on every run so edits to it take effect.
func (w *WatchCmd) build(g *Global, root *CLI) watch.BuildFunc {
	flags := BuildCmd{Jobs: w.Jobs, Strict: w.Strict}
	return func(ctx context.Context, _ string) error {
		cfg, err := root.loadConfig()
		if err != nil {
			return err
		}
		flags.apply(cfg)
		report, err := RunBuild(ctx, g, cfg, "")
		if report != nil {
			_, _ = fmt.Fprintln(g.Stdout, report.Summary())
		}
		return err
	}
}
