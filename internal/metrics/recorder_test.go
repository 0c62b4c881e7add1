package metrics

import (
	"testing"
	"time"
)

// TestNoopRecorder ensures the no-op implementation satisfies the interface and does not panic.
func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("render", 10*time.Millisecond)
	r.ObserveBuildDuration(20 * time.Millisecond)
	r.IncStageResult("render", ResultSuccess)
	r.IncBuildOutcome(BuildOutcomeSuccess)
	r.ObserveTransformDuration("builtin", time.Millisecond, false)
	r.AddFilesWritten("page", 1)
}
