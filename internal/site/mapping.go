package site

import (
	"bytes"
	"log/slog"
	"sort"
	"strings"

	"git.home.luguber.info/inful/mksite/internal/config"
	"git.home.luguber.info/inful/mksite/internal/fsutil"
	"git.home.luguber.info/inful/mksite/internal/logfields"
	"git.home.luguber.info/inful/mksite/internal/render"
	"git.home.luguber.info/inful/mksite/internal/transform"
)

// Mapping ties one source page to one destination.
type Mapping struct {
	Source      string
	Destination string
	// Transform is nil when the content is written unchanged.
	Transform *transform.Transform
	Content   []byte
	// Layout is the layout path applied by the layout stage, if any.
	Layout string
}

// BuildMappings computes every destination the pages produce. A page whose
// extension has configured transforms fans out into one Mapping per target
// extension, each with its own copy of the content; any other page, and any
// page in the transform-ignore list, maps to a single unchanged destination.
func BuildMappings(cfg *config.Config, pages []render.Page) ([]*Mapping, error) {
	return buildMappings(cfg, pages, slog.Default())
}

func buildMappings(cfg *config.Config, pages []render.Page, logger *slog.Logger) ([]*Mapping, error) {
	ignored := fsutil.NewPathSet(cfg.Ignores.Transform...)
	mappings := make([]*Mapping, 0, len(pages))

	for _, page := range pages {
		dest, err := fsutil.SwapPrefix(page.Source, cfg.Dirs.Src, cfg.Dirs.Out)
		if err != nil {
			return nil, err
		}

		targets := cfg.TransformsFor(strings.TrimPrefix(fsutil.Ext(page.Source), "."))
		if len(targets) == 0 || ignored.Has(page.Source) || ignored.Has(dest) {
			if len(targets) > 0 {
				logger.Debug("Transform ignored", logfields.Source(page.Source), logfields.Destination(dest))
			}
			mappings = append(mappings, &Mapping{Source: page.Source, Destination: dest, Content: page.Content})
			continue
		}

		exts := make([]string, 0, len(targets))
		for ext := range targets {
			exts = append(exts, ext)
		}
		sort.Strings(exts)

		for _, ext := range exts {
			t := targets[ext]
			mappings = append(mappings, &Mapping{
				Source:      page.Source,
				Destination: ReplaceExt(dest, ext),
				Transform:   &t,
				Content:     bytes.Clone(page.Content),
			})
		}
	}
	return mappings, nil
}

// ReplaceExt returns path with its extension replaced by ext (without dot).
// A path without an extension, such as a dotfile, gets ext appended.
func ReplaceExt(path, ext string) string {
	return strings.TrimSuffix(path, fsutil.Ext(path)) + "." + ext
}
