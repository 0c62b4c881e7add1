package fsutil

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
)

// SwapPrefix rewrites path from the old root to the new one, keeping the
// relative suffix. The match is by whole path components, so "src2/a" is not
// under "src".
func SwapPrefix(path, oldRoot, newRoot string) (string, error) {
	rel, err := StripPrefix(path, oldRoot)
	if err != nil {
		return "", err
	}
	if rel == "" {
		return filepath.Clean(newRoot), nil
	}
	return filepath.Join(newRoot, rel), nil
}

// StripPrefix returns path relative to root, or "" when they are equal.
func StripPrefix(path, root string) (string, error) {
	cleanPath := filepath.Clean(path)
	cleanRoot := filepath.Clean(root)

	if cleanPath == cleanRoot {
		return "", nil
	}

	prefix := cleanRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if cleanRoot == "." && !filepath.IsAbs(cleanPath) && cleanPath != ".." &&
		!strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return cleanPath, nil
	}
	if !strings.HasPrefix(cleanPath, prefix) {
		return "", errors.PathError("cannot strip prefix").
			WithContext("path", path).
			WithContext("prefix", root).
			Build()
	}
	return cleanPath[len(prefix):], nil
}

// Contains reports whether path is root or lies beneath it.
func Contains(root, path string) bool {
	_, err := StripPrefix(path, root)
	return err == nil
}
