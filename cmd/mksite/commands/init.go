package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mksite/internal/scaffold"
)

// InitCmd implements the 'init' command.
type InitCmd struct{}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	path, err := scaffold.Init(".")
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Stdout, "Wrote %s\n", path)
	return nil
}
