package site

import (
	"context"

	"git.home.luguber.info/inful/mksite/internal/fsutil"
	"git.home.luguber.info/inful/mksite/internal/logfields"
)

func stageWrite(ctx context.Context, s *Site) error {
	for _, m := range s.mappings {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fsutil.WriteFile(m.Destination, m.Content); err != nil {
			return err
		}
		s.report.Written++
		s.logger.Debug("Wrote page", logfields.Source(m.Source), logfields.Destination(m.Destination))
	}
	return nil
}
