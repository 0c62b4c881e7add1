package site

import (
	"context"

	"git.home.luguber.info/inful/mksite/internal/render"
)

func stageRender(ctx context.Context, s *Site) error {
	s.pages = make([]render.Page, 0, len(s.sources))
	for _, src := range s.sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		page, err := s.renderer.Render(src)
		if err != nil {
			return withPath(err, "source", src)
		}
		if page.Raw {
			s.report.Raw++
		} else {
			s.report.Rendered++
		}
		s.pages = append(s.pages, page)
	}
	return nil
}
