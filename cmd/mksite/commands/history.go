package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/mksite/internal/foundation/errors"
	"git.home.luguber.info/inful/mksite/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	BuildID string `arg:"" optional:"" help:"Show one build in detail, including its report"`
	Limit   int    `short:"n" help:"Number of builds to show (0 for all)" default:"10"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Build.History == "" {
		return errors.ConfigError("build history is disabled").
			WithContext("hint", "set build.history in "+cfg.Path()).
			Build()
	}

	store, err := history.NewSQLiteStore(cfg.Build.History)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if h.BuildID != "" {
		e, err := store.Get(context.Background(), h.BuildID)
		if err != nil {
			return err
		}
		return showEntry(g.Stdout, e)
	}

	entries, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(g.Stdout, "no builds recorded")
		return nil
	}

	tw := tabwriter.NewWriter(g.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BUILD\tSTARTED\tDURATION\tOUTCOME\tWRITTEN\tSTATIC\tERROR")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			e.BuildID,
			e.Start.Local().Format(time.DateTime),
			e.Duration().Truncate(time.Millisecond),
			e.Outcome,
			e.Written,
			e.StaticFiles,
			failure(e),
		)
	}
	return tw.Flush()
}

func showEntry(w io.Writer, e history.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	_, _ = fmt.Fprintf(tw, "build:\t%s\n", e.BuildID)
	_, _ = fmt.Fprintf(tw, "started:\t%s\n", e.Start.Local().Format(time.DateTime))
	_, _ = fmt.Fprintf(tw, "duration:\t%s\n", e.Duration().Truncate(time.Millisecond))
	_, _ = fmt.Fprintf(tw, "outcome:\t%s\n", e.Outcome)
	_, _ = fmt.Fprintf(tw, "sources:\t%d\n", e.Sources)
	_, _ = fmt.Fprintf(tw, "mappings:\t%d\n", e.Mappings)
	_, _ = fmt.Fprintf(tw, "written:\t%d\n", e.Written)
	_, _ = fmt.Fprintf(tw, "static:\t%d\n", e.StaticFiles)
	_, _ = fmt.Fprintf(tw, "error:\t%s\n", failure(e))
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(e.Report) > 0 {
		_, _ = fmt.Fprintf(w, "\n%s\n", bytes.TrimSpace(e.Report))
	}
	return nil
}

func failure(e history.Entry) string {
	if e.Error == "" {
		return "-"
	}
	if e.FailedStage != "" {
		return e.FailedStage + ": " + e.Error
	}
	return e.Error
}
