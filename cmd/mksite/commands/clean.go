package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/fsutil"
	"git.home.luguber.info/inful/mksite/internal/logfields"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct{}

func (c *CleanCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	out := cfg.Dirs.Out
	if !fsutil.DirExists(out) {
		return errors.NotFoundError("nothing to clean").
			WithContext("path", out).
			Build()
	}
	g.Logger.Info("Removing output directory", logfields.Path(out))
	if err := os.RemoveAll(out); err != nil {
		return errors.FileSystemError("cannot remove output directory").
			WithCause(err).
			WithContext("path", out).
			Build()
	}
	_, _ = fmt.Fprintf(g.Stdout, "Removed %s\n", out)
	return nil
}
