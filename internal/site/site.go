package site

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mksite/internal/config"
	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/fsutil"
	"git.home.luguber.info/inful/mksite/internal/logfields"
	"git.home.luguber.info/inful/mksite/internal/metrics"
	"git.home.luguber.info/inful/mksite/internal/render"
	"git.home.luguber.info/inful/mksite/internal/transform"
)

// Site holds the state of one build. It is not reusable.
type Site struct {
	cfg      *config.Config
	runner   *transform.Runner
	logger   *slog.Logger
	recorder metrics.Recorder
	observer Observer
	buildID  string

	sources  []string
	renderer *render.Renderer
	layouts  *LayoutResolver

	pages    []render.Page
	mappings []*Mapping
	report   *Report
	built    bool
}

// Option configures a Site.
type Option func(*siteOptions)

type siteOptions struct {
	runner    *transform.Runner
	logger    *slog.Logger
	recorder  metrics.Recorder
	observers []Observer
	buildID   string
}

// WithRunner sets the transform runner. By default a runner honoring
// build.strict_exit is created.
func WithRunner(r *transform.Runner) Option {
	return func(o *siteOptions) { o.runner = r }
}

// WithLogger sets the base logger; the build id is attached to it.
func WithLogger(l *slog.Logger) Option {
	return func(o *siteOptions) { o.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *siteOptions) { o.recorder = r }
}

// WithObserver adds a stage observer.
func WithObserver(obs Observer) Option {
	return func(o *siteOptions) { o.observers = append(o.observers, obs) }
}

// WithBuildID overrides the generated build id.
func WithBuildID(id string) Option {
	return func(o *siteOptions) { o.buildID = id }
}

// New enumerates the source and layout trees of cfg and compiles their
// templates. A missing layout directory disables layouts.
func New(cfg *config.Config, opts ...Option) (*Site, error) {
	if cfg == nil {
		return nil, errors.InternalError("site requires a configuration").Build()
	}
	o := siteOptions{logger: slog.Default(), recorder: metrics.NoopRecorder{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.buildID == "" {
		o.buildID = uuid.NewString()
	}
	logger := o.logger.With(logfields.BuildID(o.buildID))
	if o.runner == nil {
		o.runner = transform.NewRunner(
			transform.WithStrictExit(cfg.Build.StrictExit),
			transform.WithLogger(logger),
			transform.WithRecorder(o.recorder),
		)
	}

	s := &Site{
		cfg:      cfg,
		runner:   o.runner,
		logger:   logger,
		recorder: o.recorder,
		observer: append(multiObserver{recorderObserver{rec: o.recorder}}, o.observers...),
		buildID:  o.buildID,
		report:   newReport(o.buildID),
	}

	sources, err := fsutil.WalkFiles(cfg.Dirs.Src)
	if err != nil {
		return nil, err
	}
	s.sources = sources
	s.report.Sources = len(sources)

	s.renderer, err = render.NewRenderer(cfg.Dirs.Src, sources, fsutil.NewPathSet(cfg.Ignores.Template...), cfg.Data)
	if err != nil {
		return nil, err
	}

	s.layouts, err = loadLayouts(cfg, logger)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func loadLayouts(cfg *config.Config, logger *slog.Logger) (*LayoutResolver, error) {
	ignored := fsutil.NewPathSet(cfg.Ignores.Layout...)
	if !fsutil.DirExists(cfg.Dirs.Layout) {
		logger.Debug("Layout directory not found, layouts disabled", logfields.Path(cfg.Dirs.Layout))
		return NewLayoutResolver(cfg.Dirs.Out, cfg.Dirs.Layout, nil, ignored, nil), nil
	}
	paths, err := fsutil.WalkFiles(cfg.Dirs.Layout)
	if err != nil {
		return nil, err
	}
	ns, err := render.NewNamespace(cfg.Dirs.Layout, paths)
	if err != nil {
		return nil, err
	}
	return NewLayoutResolver(cfg.Dirs.Out, cfg.Dirs.Layout, paths, ignored, ns), nil
}

// BuildID returns the id attached to this build's logs, report and metrics.
func (s *Site) BuildID() string { return s.buildID }

// Build runs every stage. The returned report is non-nil even when the build
// fails.
func (s *Site) Build(ctx context.Context) (*Report, error) {
	if s.built {
		return nil, errors.InternalError("site has already been built").
			WithContext("build_id", s.buildID).
			Build()
	}
	s.built = true

	s.logger.Info("Starting build",
		logfields.Path(s.cfg.Dirs.Src),
		logfields.Count(len(s.sources)))

	err := runStages(ctx, s, defaultPipeline().Build())
	s.report.finish(err)
	s.observer.OnBuildComplete(s.report)
	if err != nil {
		return s.report, err
	}
	return s.report, nil
}
