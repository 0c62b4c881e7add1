package site

import (
	"context"
	"time"

	"git.home.luguber.info/inful/mksite/internal/logfields"
)

// runStages executes stages in order, recording timing and stopping on the
// first error.
func runStages(ctx context.Context, s *Site, stages []StageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			se := &StageError{Kind: StageErrorCanceled, Stage: st.Name, Err: ctx.Err()}
			s.report.StageResults[st.Name] = StageResultCanceled
			s.observer.OnStageComplete(st.Name, 0, StageResultCanceled)
			return se
		default:
		}

		s.observer.OnStageStart(st.Name)
		t0 := time.Now()
		err := st.Fn(ctx, s)
		dur := time.Since(t0)
		s.report.StageDurations[st.Name] = dur

		if err != nil {
			se := newStageError(ctx, st.Name, err)
			result := StageResultFatal
			if se.Kind == StageErrorCanceled {
				result = StageResultCanceled
			}
			s.report.StageResults[st.Name] = result
			s.observer.OnStageComplete(st.Name, dur, result)
			return se
		}

		s.report.StageResults[st.Name] = StageResultSuccess
		s.observer.OnStageComplete(st.Name, dur, StageResultSuccess)
		s.logger.Debug("Stage complete", logfields.Stage(string(st.Name)), logfields.Duration(dur))
	}
	return nil
}
