// Package watch rebuilds a site when its inputs change.
//
// A Watcher runs an initial build, then watches directory trees recursively
// and individual files (the configuration) with fsnotify. Bursts of events
// are debounced into one rebuild. An optional gocron job rebuilds on a fixed
// interval as well. Builds never overlap: requests arriving during a build
// collapse into a single follow-up build.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/mksite/internal/fsutil"
	"git.home.luguber.info/inful/mksite/internal/logfields"
)

// DefaultDebounce is the quiet period after the last event before a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Reasons passed to BuildFunc.
const (
	ReasonInitial  = "initial"
	ReasonChange   = "change"
	ReasonSchedule = "schedule"
)

// BuildFunc runs one build. Errors are logged; watching continues.
type BuildFunc func(ctx context.Context, reason string) error

// Options configures a Watcher.
type Options struct {
	// Dirs are watched recursively. Missing directories are skipped.
	Dirs []string
	// Files are watched individually (their parent directory is watched and
	// events for other entries are dropped).
	Files []string
	// Exclude roots never trigger a rebuild (the output directory).
	Exclude  []string
	Debounce time.Duration
	// Every schedules a periodic rebuild; zero disables it.
	Every  time.Duration
	Logger *slog.Logger
}

// Watcher drives rebuilds from filesystem events and a schedule.
type Watcher struct {
	opts    Options
	build   BuildFunc
	logger  *slog.Logger
	files   fsutil.PathSet
	fsw     *fsnotify.Watcher
	sched   gocron.Scheduler
	request chan string

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Watcher. Run starts it.
func New(opts Options, build BuildFunc) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w := &Watcher{
		opts:    opts,
		build:   build,
		logger:  opts.Logger,
		files:   fsutil.NewPathSet(opts.Files...),
		fsw:     fsw,
		request: make(chan string, 1),
	}

	for _, dir := range opts.Dirs {
		if !fsutil.DirExists(dir) {
			w.logger.Debug("Watch directory missing, skipped", logfields.Path(dir))
			continue
		}
		w.addDirsRecursive(dir)
	}
	for _, f := range opts.Files {
		if err := fsw.Add(filepath.Dir(f)); err != nil {
			w.logger.Warn("watch add failed", logfields.Path(f), logfields.Error(err))
		}
	}

	if opts.Every > 0 {
		if err := w.schedule(opts.Every); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) schedule(every time.Duration) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() { w.enqueue(ReasonSchedule) }),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("failed to create periodic rebuild job: %w", err)
	}
	w.sched = s
	return nil
}

// Run builds once, then rebuilds on changes until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	w.runBuild(ctx, ReasonInitial)

	if w.sched != nil {
		w.logger.Info("Starting scheduler", slog.Duration("every", w.opts.Every))
		w.sched.Start()
		defer func() {
			if err := w.sched.Shutdown(); err != nil {
				w.logger.Warn("scheduler shutdown error", logfields.Error(err))
			}
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(ctx)
	}()

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-w.request:
			w.runBuild(ctx, reason)
		}
	}
}

func (w *Watcher) runBuild(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}
	if reason != ReasonInitial {
		w.logger.Info("Rebuilding site", slog.String("reason", reason))
	}
	if err := w.build(ctx, reason); err != nil {
		w.logger.Warn("rebuild failed", logfields.Error(err))
	}
}

// enqueue requests a build; a request already waiting absorbs this one.
func (w *Watcher) enqueue(reason string) {
	select {
	case w.request <- reason:
	default:
	}
}

// trigger restarts the debounce timer.
func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, func() { w.enqueue(ReasonChange) })
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !w.relevant(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			w.addDirsRecursive(ev.Name)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	w.trigger()
}

// relevant reports whether an event path should cause a rebuild.
func (w *Watcher) relevant(path string) bool {
	for _, ex := range w.opts.Exclude {
		if fsutil.Contains(ex, path) {
			return false
		}
	}
	if w.files.Has(path) {
		return true
	}
	if shouldIgnoreEvent(path) {
		return false
	}
	for _, dir := range w.opts.Dirs {
		if fsutil.Contains(dir, path) {
			return true
		}
	}
	return false
}

func (w *Watcher) addDirsRecursive(root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				w.logger.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for editor and OS scratch files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
