// Package history persists run results in a local SQLite database so
// latency and pass-rate trends survive across invocations.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lolijho/crm-grab-backend-sub000/internal/harness"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	base_url TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP,
	tests_run INTEGER NOT NULL DEFAULT 0,
	tests_passed INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS results (
	run_id TEXT NOT NULL REFERENCES runs(id),
	suite TEXT NOT NULL,
	name TEXT NOT NULL,
	method TEXT NOT NULL,
	path TEXT NOT NULL,
	expected_status INTEGER NOT NULL,
	status INTEGER NOT NULL,
	passed INTEGER NOT NULL,
	latency_ms REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
`

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Run is one harness invocation.
type Run struct {
	ID          string
	BaseURL     string
	StartedAt   time.Time
	FinishedAt  time.Time
	TestsRun    int
	TestsPassed int
}

// StartRun registers a new run and returns its id.
func (s *Store) StartRun(baseURL string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, base_url, started_at) VALUES (?, ?, ?)`,
		id, baseURL, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}
	return id, nil
}

// Record stores one case result under the run.
func (s *Store) Record(runID, suite string, r *harness.Result) error {
	_, err := s.db.Exec(
		`INSERT INTO results (run_id, suite, name, method, path, expected_status, status, passed, latency_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, suite, r.Case.Name, r.Case.Method, r.Case.Path,
		r.Case.ExpectedStatus, r.StatusCode, r.Passed,
		float64(r.Elapsed.Microseconds())/1000,
	)
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}

// FinishRun stamps the run with its final tally.
func (s *Store) FinishRun(runID string, testsRun, testsPassed int) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, tests_run = ?, tests_passed = ? WHERE id = ?`,
		time.Now().UTC(), testsRun, testsPassed, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, base_url, started_at, finished_at, tests_run, tests_passed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		// finished_at is scanned separately because the sqlite driver only
		// parses timestamps for columns with a declared type, not expressions.
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.BaseURL, &r.StartedAt, &finished, &r.TestsRun, &r.TestsPassed); err != nil {
			return nil, err
		}
		if finished.Valid {
			r.FinishedAt = finished.Time
		} else {
			r.FinishedAt = r.StartedAt
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MeasuredPaths returns every path with at least one recorded latency,
// sorted for stable output.
func (s *Store) MeasuredPaths() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT path FROM results WHERE latency_ms > 0 ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list measured paths: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, rows.Err()
}

// AverageLatency returns the mean recorded latency in milliseconds for a
// path across all runs; ok is false when nothing was measured.
func (s *Store) AverageLatency(path string) (float64, bool, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT AVG(latency_ms) FROM results WHERE path = ? AND latency_ms > 0`, path,
	).Scan(&avg)
	if err != nil {
		return 0, false, err
	}
	return avg.Float64, avg.Valid, nil
}
