package site

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BuildOutcome is the final status of a build.
type BuildOutcome string

const (
	OutcomeSuccess  BuildOutcome = "success"
	OutcomeFailed   BuildOutcome = "failed"
	OutcomeCanceled BuildOutcome = "canceled"
)

// Report summarizes one build.
type Report struct {
	BuildID        string                      `json:"build_id"`
	Start          time.Time                   `json:"start"`
	End            time.Time                   `json:"end"`
	Sources        int                         `json:"sources"`      // source files discovered
	Rendered       int                         `json:"rendered"`     // pages rendered through templates
	Raw            int                         `json:"raw"`          // template-ignored pages read verbatim
	Mappings       int                         `json:"mappings"`     // destinations produced
	Transformed    int                         `json:"transformed"`  // mappings run through a transform
	LaidOut        int                         `json:"laid_out"`     // mappings wrapped in a layout
	Written        int                         `json:"written"`      // page files written
	StaticFiles    int                         `json:"static_files"` // static files copied
	StageDurations map[StageName]time.Duration `json:"stage_durations"`
	StageResults   map[StageName]StageResult   `json:"stage_results"`
	Outcome        BuildOutcome                `json:"outcome"`
	FailedStage    StageName                   `json:"failed_stage,omitempty"`
	Error          string                      `json:"error,omitempty"`
}

func newReport(buildID string) *Report {
	return &Report{
		BuildID:        buildID,
		Start:          time.Now(),
		StageDurations: make(map[StageName]time.Duration),
		StageResults:   make(map[StageName]StageResult),
	}
}

// finish stamps the end time and derives the outcome from err.
func (r *Report) finish(err error) {
	r.End = time.Now()
	if err == nil {
		r.Outcome = OutcomeSuccess
		return
	}
	r.Error = err.Error()
	r.Outcome = OutcomeFailed
	var se *StageError
	if stdErrors.As(err, &se) {
		r.FailedStage = se.Stage
		if se.Kind == StageErrorCanceled {
			r.Outcome = OutcomeCanceled
		}
	}
}

// Duration returns the wall time of the build.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("sources=%d mappings=%d transformed=%d laid_out=%d written=%d static=%d duration=%s outcome=%s",
		r.Sources, r.Mappings, r.Transformed, r.LaidOut, r.Written, r.StaticFiles,
		r.Duration().Truncate(time.Millisecond), r.Outcome)
}

// Persist writes the report as JSON to path, replacing it atomically.
func (r *Report) Persist(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure directory for report: %w", err)
	}
	jb, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report json: %w", err)
	}
	tmp := path + ".tmp"
	// #nosec G306 -- reports are meant to be shared.
	if err := os.WriteFile(tmp, jb, 0o644); err != nil {
		return fmt.Errorf("write temp report json: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("atomic rename report json: %w", err)
	}
	return nil
}
