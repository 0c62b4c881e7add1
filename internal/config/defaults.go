package config

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/transform"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// DirsDefaultApplier fills in unset directory roots.
type DirsDefaultApplier struct{}

func (DirsDefaultApplier) Domain() string { return "dirs" }

func (DirsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Dirs.Src == "" {
		cfg.Dirs.Src = "src"
	}
	if cfg.Dirs.Out == "" {
		cfg.Dirs.Out = "out"
	}
	if cfg.Dirs.Static == "" {
		cfg.Dirs.Static = "static"
	}
	if cfg.Dirs.Layout == "" {
		cfg.Dirs.Layout = "layout"
	}
	return nil
}

// DataDefaultApplier makes sure maps are non-nil so templates and lookups
// never see a nil map.
type DataDefaultApplier struct{}

func (DataDefaultApplier) Domain() string { return "data" }

func (DataDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Data == nil {
		cfg.Data = map[string]any{}
	}
	if cfg.Transforms == nil {
		cfg.Transforms = map[string]map[string]transform.Transform{}
	}
	return nil
}

// ApplyDefaults runs every domain applier in order.
func ApplyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{DirsDefaultApplier{}, DataDefaultApplier{}}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "cannot apply defaults").
				WithContext("domain", a.Domain()).
				Build()
		}
	}
	return nil
}

// Resolve makes every directory and ignore path absolute against base. It is
// called once at load time; paths are not touched afterwards.
func (c *Config) Resolve(base string) error {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.FileSystemError("cannot determine working directory").WithCause(err).Build()
		}
		base = wd
	}
	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(base, p)
	}

	c.Dirs.Src = abs(c.Dirs.Src)
	c.Dirs.Out = abs(c.Dirs.Out)
	c.Dirs.Static = abs(c.Dirs.Static)
	c.Dirs.Layout = abs(c.Dirs.Layout)

	for _, list := range []*[]string{&c.Ignores.Template, &c.Ignores.Transform, &c.Ignores.Layout} {
		for i, p := range *list {
			(*list)[i] = abs(p)
		}
	}
	return nil
}
