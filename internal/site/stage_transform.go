package site

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/mksite/internal/logfields"
)

// stageTransform applies each Mapping's transform. Up to build.jobs mappings
// run at once; one chain always runs sequentially.
func stageTransform(ctx context.Context, s *Site) error {
	var transformed atomic.Int64
	apply := func(ctx context.Context, m *Mapping) error {
		s.logger.Debug("Transforming",
			logfields.Source(m.Source),
			logfields.Destination(m.Destination),
			logfields.Command(m.Transform.String()))
		out, err := s.runner.Apply(ctx, *m.Transform, m.Content)
		if err != nil {
			return withPath(withPath(err, "source", m.Source), "destination", m.Destination)
		}
		m.Content = out
		transformed.Add(1)
		return nil
	}

	jobs := s.cfg.Parallelism()
	if jobs == 1 {
		for _, m := range s.mappings {
			if m.Transform == nil {
				continue
			}
			if err := apply(ctx, m); err != nil {
				return err
			}
		}
		s.report.Transformed = int(transformed.Load())
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, m := range s.mappings {
		if m.Transform == nil {
			continue
		}
		g.Go(func() error { return apply(gctx, m) })
	}
	err := g.Wait()
	s.report.Transformed = int(transformed.Load())
	return err
}
