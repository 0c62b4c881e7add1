package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/linkcheck"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct{}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := linkcheck.Check(ctx, cfg.Dirs.Out)
	if err != nil {
		return err
	}
	for _, b := range res.Broken {
		page := b.Page
		if rel, relErr := filepath.Rel(cfg.Dirs.Out, b.Page); relErr == nil {
			page = rel
		}
		_, _ = fmt.Fprintf(g.Stdout, "%s:%d: broken %s %s=%q\n", page, b.Link.Line, b.Link.Tag, b.Link.Attribute, b.Link.URL)
	}
	_, _ = fmt.Fprintf(g.Stdout, "checked %d links in %d pages, %d broken\n", res.Links, res.Pages, len(res.Broken))

	if !res.OK() {
		return errors.BuildError("broken links found").
			WithContext("count", len(res.Broken)).
			Build()
	}
	return nil
}
