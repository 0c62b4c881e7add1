// Package history records finished builds in a SQLite database so past
// builds can be listed with "mksite history".
package history

import (
	"context"
	"time"
)

// Entry is one recorded build.
type Entry struct {
	ID          int64
	BuildID     string
	Start       time.Time
	End         time.Time
	Outcome     string
	FailedStage string
	Error       string
	Sources     int
	Mappings    int
	Written     int
	StaticFiles int
	// Report is the JSON encoded build report.
	Report []byte
}

// Duration returns the wall time of the build.
func (e Entry) Duration() time.Duration { return e.End.Sub(e.Start) }

// Store persists build entries.
type Store interface {
	// Record appends a finished build.
	Record(ctx context.Context, e Entry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// Get returns the entry for buildID.
	Get(ctx context.Context, buildID string) (Entry, error)

	// Close closes the store and releases resources.
	Close() error
}
