package history

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the history database at dbPath.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, wrap(ErrDatabaseOpenFailed, err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, wrap(ErrDatabaseOpenFailed, err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, wrap(ErrInitializeSchemaFailed, err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id TEXT NOT NULL UNIQUE,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		failed_stage TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		sources INTEGER NOT NULL DEFAULT 0,
		mappings INTEGER NOT NULL DEFAULT 0,
		written INTEGER NOT NULL DEFAULT 0,
		static_files INTEGER NOT NULL DEFAULT 0,
		report BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);
	CREATE INDEX IF NOT EXISTS idx_builds_outcome ON builds(outcome);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record adds a finished build to the store.
func (s *SQLiteStore) Record(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (build_id, started_at, finished_at, outcome, failed_stage, error, sources, mappings, written, static_files, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.BuildID, e.Start.UnixMilli(), e.End.UnixMilli(), e.Outcome, e.FailedStage, e.Error,
		e.Sources, e.Mappings, e.Written, e.StaticFiles, e.Report,
	)
	if err != nil {
		return wrap(ErrRecordFailed, err)
	}
	return nil
}

const selectColumns = `SELECT id, build_id, started_at, finished_at, outcome, failed_stage, error, sources, mappings, written, static_files, report FROM builds`

// Recent returns up to limit builds, newest first. limit <= 0 returns all.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, wrap(ErrQueryFailed, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, wrap(ErrQueryFailed, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(ErrQueryFailed, err)
	}
	return entries, nil
}

// Get returns the build recorded under buildID.
func (s *SQLiteStore) Get(ctx context.Context, buildID string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE build_id = ?`, buildID)
	e, err := scanEntry(row)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound.WithContext("build_id", buildID)
	}
	if err != nil {
		return Entry{}, wrap(ErrQueryFailed, err)
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (Entry, error) {
	var e Entry
	var start, end int64
	err := sc.Scan(&e.ID, &e.BuildID, &start, &end, &e.Outcome, &e.FailedStage, &e.Error,
		&e.Sources, &e.Mappings, &e.Written, &e.StaticFiles, &e.Report)
	if err != nil {
		return Entry{}, err
	}
	e.Start = time.UnixMilli(start)
	e.End = time.UnixMilli(end)
	return e, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
