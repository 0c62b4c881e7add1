package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/mksite/internal/logfields"
	"git.home.luguber.info/inful/mksite/internal/site"
)

// FromReport converts a finished build report into an Entry.
func FromReport(r *site.Report) (Entry, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		BuildID:     r.BuildID,
		Start:       r.Start,
		End:         r.End,
		Outcome:     string(r.Outcome),
		FailedStage: string(r.FailedStage),
		Error:       r.Error,
		Sources:     r.Sources,
		Mappings:    r.Mappings,
		Written:     r.Written,
		StaticFiles: r.StaticFiles,
		Report:      payload,
	}, nil
}

// Observer records every finished build into a Store. Failures are logged
// and never change the build outcome.
type Observer struct {
	site.NoopObserver
	store  Store
	logger *slog.Logger
}

// NewObserver returns a site.Observer writing to store.
func NewObserver(store Store, logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{store: store, logger: logger}
}

// OnBuildComplete records report.
func (o *Observer) OnBuildComplete(report *site.Report) {
	entry, err := FromReport(report)
	if err != nil {
		o.logger.Warn("Cannot encode build report for history", logfields.BuildID(report.BuildID), logfields.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := o.store.Record(ctx, entry); err != nil {
		o.logger.Warn("Cannot record build in history", logfields.BuildID(report.BuildID), logfields.Error(err))
	}
}
