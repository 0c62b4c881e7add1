package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel is the final status of a build.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for build, stage and transform metrics.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	// ObserveTransformDuration records one command of a transform; kind is
	// "process" or "builtin".
	ObserveTransformDuration(kind string, d time.Duration, success bool)
	// AddFilesWritten counts output files; kind is "page" or "static".
	AddFilesWritten(kind string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration)           {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)                   {}
func (NoopRecorder) IncStageResult(string, ResultLabel)                   {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)                    {}
func (NoopRecorder) ObserveTransformDuration(string, time.Duration, bool) {}
func (NoopRecorder) AddFilesWritten(string, int)                          {}
