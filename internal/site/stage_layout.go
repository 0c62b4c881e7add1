package site

import (
	"context"
	"path/filepath"
	"unicode/utf8"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/fsutil"
	"git.home.luguber.info/inful/mksite/internal/logfields"
	"git.home.luguber.info/inful/mksite/internal/render"
)

func stageLayout(ctx context.Context, s *Site) error {
	if !s.layouts.Enabled() {
		return nil
	}
	for _, m := range s.mappings {
		if err := ctx.Err(); err != nil {
			return err
		}
		layout, ok, err := s.layouts.Resolve(m.Destination)
		if err != nil {
			return withPath(err, "destination", m.Destination)
		}
		if !ok {
			continue
		}
		if err := s.applyLayout(m, layout); err != nil {
			return err
		}
		s.report.LaidOut++
	}
	return nil
}

func (s *Site) applyLayout(m *Mapping, layout string) error {
	if !utf8.Valid(m.Content) {
		return errors.EncodingError("page content is not valid UTF-8").
			WithContext("destination", m.Destination).
			WithContext("layout", layout).
			Build()
	}
	ns := s.layouts.Namespace()
	name, err := render.TemplateName(ns.Root(), layout)
	if err != nil {
		return err
	}
	rel, err := fsutil.StripPrefix(m.Destination, s.cfg.Dirs.Out)
	if err != nil {
		return err
	}

	data := render.LayoutContext(s.cfg.Data, string(m.Content), filepath.ToSlash(rel), m.Source, m.Destination, name)
	out, err := ns.Render(name, data)
	if err != nil {
		return withPath(err, "destination", m.Destination)
	}
	s.logger.Debug("Applied layout", logfields.Destination(m.Destination), logfields.Layout(name))
	m.Content = out
	m.Layout = layout
	return nil
}
