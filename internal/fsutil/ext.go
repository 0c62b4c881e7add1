package fsutil

import (
	"path/filepath"
	"strings"
)

// Ext returns the extension of the last element of path, including the dot.
// A dot that starts the name marks a hidden file rather than an extension,
// so Ext(".htaccess") is "" while Ext(".config.toml") is ".toml".
func Ext(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[i:]
	}
	return ""
}
