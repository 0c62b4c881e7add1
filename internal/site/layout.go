package site

import (
	"path/filepath"

	"git.home.luguber.info/inful/mksite/internal/fsutil"
	"git.home.luguber.info/inful/mksite/internal/render"
)

// LayoutResolver picks the layout wrapping an output file.
//
// For a destination D the candidate L is D moved from the output root to the
// layout root. L itself wins if it exists; otherwise the closest "_.<ext>"
// (or "_" for extensionless files) in L's parent directories, up to the
// layout root, is used.
type LayoutResolver struct {
	outRoot    string
	layoutRoot string
	layouts    fsutil.PathSet // nil when layouts are disabled
	ignored    fsutil.PathSet
	ns         *render.Namespace
}

// NewLayoutResolver returns a resolver over the discovered layout paths. A
// nil ns disables layouts entirely.
func NewLayoutResolver(outRoot, layoutRoot string, paths []string, ignored fsutil.PathSet, ns *render.Namespace) *LayoutResolver {
	r := &LayoutResolver{
		outRoot:    filepath.Clean(outRoot),
		layoutRoot: filepath.Clean(layoutRoot),
		ignored:    ignored,
		ns:         ns,
	}
	if ns != nil {
		r.layouts = fsutil.NewPathSet(paths...)
	}
	return r
}

// Enabled reports whether a layout directory was found.
func (r *LayoutResolver) Enabled() bool { return r.layouts != nil }

// Resolve returns the layout path for destination, or ok=false when no
// layout applies.
func (r *LayoutResolver) Resolve(destination string) (layout string, ok bool, err error) {
	if !r.Enabled() || r.ignored.Has(destination) {
		return "", false, nil
	}

	candidate, err := fsutil.SwapPrefix(destination, r.outRoot, r.layoutRoot)
	if err != nil {
		return "", false, err
	}
	if r.layouts.Has(candidate) {
		return candidate, true, nil
	}

	wildcard := "_"
	if ext := fsutil.Ext(destination); ext != "" {
		wildcard += ext
	}
	for dir := filepath.Dir(candidate); ; {
		if p := filepath.Join(dir, wildcard); r.layouts.Has(p) {
			return p, true, nil
		}
		if dir == r.layoutRoot {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Namespace returns the compiled layout templates, or nil when disabled.
func (r *LayoutResolver) Namespace() *render.Namespace { return r.ns }
