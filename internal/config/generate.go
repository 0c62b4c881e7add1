package config

import (
	_ "embed"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
)

//go:embed default.toml
var defaultConfig []byte

// Default returns the contents of the generated configuration file.
func Default() []byte {
	out := make([]byte, len(defaultConfig))
	copy(out, defaultConfig)
	return out
}

// Generate writes the default configuration into dir. It refuses to
// overwrite an existing file.
func Generate(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	// #nosec G302,G304 -- config file is meant to be user readable.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", errors.ConfigError("configuration file already exists").
				WithCause(err).
				WithContext("file", path).
				Build()
		}
		return "", errors.FileSystemError("cannot create configuration file").
			WithCause(err).
			WithContext("file", path).
			Build()
	}
	if _, err := f.Write(defaultConfig); err != nil {
		_ = f.Close()
		return "", errors.FileSystemError("cannot write configuration file").
			WithCause(err).
			WithContext("file", path).
			Build()
	}
	if err := f.Close(); err != nil {
		return "", errors.FileSystemError("cannot write configuration file").
			WithCause(err).
			WithContext("file", path).
			Build()
	}
	return path, nil
}
