package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/suiterun/suiterun/packages/core/runner"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	manifest    TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL,
	total       INTEGER NOT NULL,
	passed      INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	verdict     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS entries (
	run_id      TEXT NOT NULL REFERENCES runs(id),
	position    INTEGER NOT NULL,
	script      TEXT NOT NULL,
	exit_code   INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	passed      INTEGER NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Store is a run-history database handle.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

// Run is one recorded manifest execution.
type Run struct {
	ID        string
	Manifest  string
	StartedAt time.Time
	Duration  time.Duration
	Total     int
	Passed    int
	Failed    int
	Verdict   string
}

// Entry is one executed script within a recorded run.
type Entry struct {
	Position int
	Script   string
	ExitCode int
	Duration time.Duration
	Passed   bool
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db, timeout: 30 * time.Second}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores one completed run and returns its generated id.
func (s *Store) RecordRun(res *runner.RunResult) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, manifest, started_at, duration_ms, total, passed, failed, verdict)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, res.Manifest, res.StartedAt.UTC(), res.Duration.Milliseconds(),
		len(res.Results), res.Passed, res.Failed, res.Verdict())
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}

	for i, er := range res.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO entries (run_id, position, script, exit_code, duration_ms, passed)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, i+1, er.Entry, er.ExitCode, er.Duration.Milliseconds(), er.Passed)
		if err != nil {
			return "", fmt.Errorf("recording entry %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, manifest, started_at, duration_ms, total, passed, failed, verdict
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r := &Run{}
		var durationMs int64
		if err := rows.Scan(&r.ID, &r.Manifest, &r.StartedAt, &durationMs,
			&r.Total, &r.Passed, &r.Failed, &r.Verdict); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return runs, nil
}

// RunEntries returns the per-script breakdown of one run, in manifest order.
func (s *Store) RunEntries(runID string) ([]*Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, script, exit_code, duration_ms, passed
		 FROM entries WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		var durationMs int64
		if err := rows.Scan(&e.Position, &e.Script, &e.ExitCode, &durationMs, &e.Passed); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}
