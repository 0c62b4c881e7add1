package fsutil

import (
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
)

// WalkFiles returns every non-directory path beneath root, depth-first in
// directory-entry order. Symlinks to directories are followed; cycles are not
// detected. A directory that cannot be read fails the whole walk.
func WalkFiles(root string) ([]string, error) {
	var files []string
	pending := []string{root}

	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot read directory").
				Fatal().
				WithContext("path", dir).
				Build()
		}

		// Pushed in reverse so the stack pops subdirectories in entry order.
		var subdirs []string
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			isDir, err := isDirEntry(path, entry)
			if err != nil {
				return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot stat entry").
					Fatal().
					WithContext("path", path).
					Build()
			}
			if isDir {
				subdirs = append(subdirs, path)
				continue
			}
			files = append(files, path)
		}
		for i := len(subdirs) - 1; i >= 0; i-- {
			pending = append(pending, subdirs[i])
		}
	}

	return files, nil
}

func isDirEntry(path string, entry os.DirEntry) (bool, error) {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// DirExists reports whether path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
