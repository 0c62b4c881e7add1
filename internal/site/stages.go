package site

import (
	"context"
	stdErrors "errors"
	"fmt"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, s *Site) error

// StageName is a strongly-typed identifier for a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageRender    StageName = "render"
	StageMap       StageName = "map"
	StageTransform StageName = "transform"
	StageLayout    StageName = "layout"
	StageWrite     StageName = "write"
	StageStatic    StageName = "static"
)

// StageErrorKind classifies the outcome of a failed stage.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError names the stage a build failed in.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// StageResult captures the high-level outcome of a stage.
type StageResult string

const (
	StageResultSuccess  StageResult = "success"
	StageResultFatal    StageResult = "fatal"
	StageResultCanceled StageResult = "canceled"
)

func newStageError(ctx context.Context, stage StageName, err error) *StageError {
	var se *StageError
	if stdErrors.As(err, &se) {
		return se
	}
	if ctx.Err() != nil || stdErrors.Is(err, context.Canceled) {
		return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
	}
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline is a fluent builder for ordered stage definitions.
type Pipeline struct{ Defs []StageDef }

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{Defs: make([]StageDef, 0, 6)} }

// Add appends a stage unconditionally.
func (p *Pipeline) Add(name StageName, fn Stage) *Pipeline {
	p.Defs = append(p.Defs, StageDef{Name: name, Fn: fn})
	return p
}

// Build returns a copy of the stage definitions.
func (p *Pipeline) Build() []StageDef {
	out := make([]StageDef, len(p.Defs))
	copy(out, p.Defs)
	return out
}

// defaultPipeline is the full build: render, map, transform, layout, write, static.
func defaultPipeline() *Pipeline {
	return NewPipeline().
		Add(StageRender, stageRender).
		Add(StageMap, stageMap).
		Add(StageTransform, stageTransform).
		Add(StageLayout, stageLayout).
		Add(StageWrite, stageWrite).
		Add(StageStatic, stageStatic)
}
