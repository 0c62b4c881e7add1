package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/mksite/internal/config"
	"git.home.luguber.info/inful/mksite/internal/history"
	"git.home.luguber.info/inful/mksite/internal/logfields"
	"git.home.luguber.info/inful/mksite/internal/metrics"
	"git.home.luguber.info/inful/mksite/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Jobs        int    `short:"j" help:"Run up to N transforms in parallel (overrides build.jobs)"`
	Strict      bool   `help:"Fail the build when a transform exits with a non-zero status"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus metrics to this textfile (overrides build.metrics_file)"`
	Report      string `help:"Write the JSON build report to this file"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	b.apply(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	report, err := RunBuild(ctx, g, cfg, b.Report)
	if report != nil {
		_, _ = fmt.Fprintln(g.Stdout, report.Summary())
	}
	return err
}

// apply overrides configuration values with the flags that were set.
func (b *BuildCmd) apply(cfg *config.Config) {
	if b.Jobs > 0 {
		cfg.Build.Jobs = b.Jobs
	}
	if b.Strict {
		cfg.Build.StrictExit = true
	}
	if b.MetricsFile != "" {
		cfg.Build.MetricsFile = b.MetricsFile
	}
}

// RunBuild performs one build of cfg. Metrics, history and the JSON report
// are written when configured; failures to write them are logged and do not
// fail the build. The report is returned even when the build fails.
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, reportPath string) (*site.Report, error) {
	opts := []site.Option{site.WithLogger(g.Logger)}

	var rec *metrics.PrometheusRecorder
	if cfg.Build.MetricsFile != "" {
		rec = metrics.NewPrometheusRecorder(nil)
		opts = append(opts, site.WithRecorder(rec))
	}

	if cfg.Build.History != "" {
		store, err := history.NewSQLiteStore(cfg.Build.History)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				g.Logger.Warn("Cannot close history database", logfields.Path(cfg.Build.History), logfields.Error(cerr))
			}
		}()
		opts = append(opts, site.WithObserver(history.NewObserver(store, g.Logger)))
	}

	s, err := site.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	report, buildErr := s.Build(ctx)

	if rec != nil {
		if err := rec.WriteTextfile(cfg.Build.MetricsFile); err != nil {
			g.Logger.Warn("Cannot write metrics textfile", logfields.Path(cfg.Build.MetricsFile), logfields.Error(err))
		}
	}
	if reportPath != "" && report != nil {
		if err := report.Persist(reportPath); err != nil {
			g.Logger.Warn("Cannot write build report", logfields.Path(reportPath), logfields.Error(err))
		}
	}

	if buildErr != nil {
		g.Logger.Error("Build failed", logfields.BuildID(s.BuildID()), logfields.Error(buildErr))
		return report, buildErr
	}
	g.Logger.Info("Build complete",
		logfields.BuildID(s.BuildID()),
		logfields.Count(report.Written),
		logfields.Duration(report.Duration()))
	return report, nil
}
