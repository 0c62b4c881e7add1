package fsutil

import (
	"path/filepath"

	"git.home.luguber.info/inful/mksite/internal/util/sets"
)

// PathSet is a set of cleaned paths.
type PathSet sets.Set[string]

// NewPathSet returns a set holding the cleaned form of every path.
func NewPathSet(paths ...string) PathSet {
	s := make(sets.Set[string], len(paths))
	for _, p := range paths {
		s.Add(filepath.Clean(p))
	}
	return PathSet(s)
}

// Has reports whether path, once cleaned, is in the set.
func (s PathSet) Has(path string) bool {
	return sets.Set[string](s).Has(filepath.Clean(path))
}
