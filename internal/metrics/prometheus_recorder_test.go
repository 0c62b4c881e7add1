package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("transform", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("transform", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.ObserveTransformDuration("process", 20*time.Millisecond, true)
	pr.AddFilesWritten("page", 3)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["mksite_stage_duration_seconds"])
	assert.True(t, names["mksite_files_written_total"])
	assert.True(t, names["mksite_transform_command_duration_seconds"])
	assert.Same(t, reg, pr.Registry())
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveStageDuration("render", time.Second)
		pr.IncBuildOutcome(BuildOutcomeFailed)
		pr.AddFilesWritten("static", 1)
	})
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.AddFilesWritten("static", 2)
	pr.IncBuildOutcome(BuildOutcomeSuccess)

	path := filepath.Join(t.TempDir(), "collector", "mksite.prom")
	require.NoError(t, pr.WriteTextfile(path))

	// #nosec G304 -- test path.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `mksite_files_written_total{kind="static"} 2`)
	assert.Contains(t, string(data), `mksite_build_outcomes_total{outcome="success"} 1`)
}
