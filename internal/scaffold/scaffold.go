// Package scaffold creates new mksite projects on disk.
package scaffold

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"git.home.luguber.info/inful/mksite/internal/config"
	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/logfields"
)

// ProjectDirs are the directories created inside a new project.
var ProjectDirs = []string{"src", "static", "layout"}

const gitignore = "out/\n"

// Options controls project creation.
type Options struct {
	// Git initialises a repository with a .gitignore for the output directory.
	Git bool
}

// Init writes the default configuration file into dir.
func Init(dir string) (string, error) {
	return config.Generate(dir)
}

// New creates the project directory name with the standard layout and a
// default configuration. The directory must not already exist.
func New(name string, opts Options) error {
	if name == "" {
		return errors.ValidationError("project name is required").Build()
	}

	slog.Info("Creating new project scaffold", logfields.Path(name))

	// #nosec G301 -- project directories are meant to be user accessible.
	if err := os.Mkdir(name, 0o755); err != nil {
		if os.IsExist(err) {
			return errors.ValidationError("project directory already exists").
				WithCause(err).
				WithContext("path", name).
				Build()
		}
		return errors.FileSystemError("cannot create project directory").
			WithCause(err).
			WithContext("path", name).
			Build()
	}
	for _, dir := range ProjectDirs {
		path := filepath.Join(name, dir)
		// #nosec G301 -- project directories are meant to be user accessible.
		if err := os.Mkdir(path, 0o755); err != nil {
			return errors.FileSystemError("cannot create project directory").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
	}

	if _, err := config.Generate(name); err != nil {
		return err
	}

	if opts.Git {
		return initRepository(name)
	}
	return nil
}

func initRepository(dir string) error {
	if _, err := git.PlainInit(dir, false); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "cannot initialise git repository").
			WithContext("path", dir).
			Build()
	}
	path := filepath.Join(dir, ".gitignore")
	// #nosec G306 -- .gitignore is meant to be user readable.
	if err := os.WriteFile(path, []byte(gitignore), 0o644); err != nil {
		return errors.FileSystemError("cannot write .gitignore").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
