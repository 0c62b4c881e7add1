package site

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mksite/internal/config"
	"git.home.luguber.info/inful/mksite/internal/transform"
)

// project is a throwaway site root with the default directory layout.
type project struct {
	root string
	cfg  *config.Config
}

func newProject(t *testing.T) *project {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{}
	require.NoError(t, config.ApplyDefaults(cfg))
	require.NoError(t, cfg.Resolve(root))
	return &project{root: root, cfg: cfg}
}

func (p *project) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(p.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (p *project) path(rel string) string {
	return filepath.Join(p.root, filepath.FromSlash(rel))
}

func (p *project) transform(src, dst string, t transform.Transform) {
	if p.cfg.Transforms[src] == nil {
		p.cfg.Transforms[src] = map[string]transform.Transform{}
	}
	p.cfg.Transforms[src][dst] = t
}

func (p *project) read(t *testing.T, rel string) string {
	t.Helper()
	// #nosec G304 -- test path.
	data, err := os.ReadFile(p.path(rel))
	require.NoError(t, err)
	return string(data)
}

// snapshot returns every file under dir keyed by slash relative path.
func snapshot(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		// #nosec G304 -- test path.
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// recordingObserver remembers the order stages completed in.
type recordingObserver struct {
	completed []StageName
	results   map[StageName]StageResult
	report    *Report
}

func (o *recordingObserver) OnStageStart(StageName) {}

func (o *recordingObserver) OnStageComplete(stage StageName, _ time.Duration, result StageResult) {
	if o.results == nil {
		o.results = map[StageName]StageResult{}
	}
	o.completed = append(o.completed, stage)
	o.results[stage] = result
}

func (o *recordingObserver) OnBuildComplete(r *Report) { o.report = r }
