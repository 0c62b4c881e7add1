package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mksite/internal/scaffold"
)

// NewCmd implements the 'new' command.
type NewCmd struct {
	Name string `arg:"" help:"Directory to create"`
	Git  bool   `help:"Initialise a git repository that ignores the output directory"`
}

func (n *NewCmd) Run(g *Global, _ *CLI) error {
	if err := scaffold.New(n.Name, scaffold.Options{Git: n.Git}); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Stdout, "Created project %s\n", n.Name)
	return nil
}
