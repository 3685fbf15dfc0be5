// Package sqlite provides a SQLite-backed ports.RunStore using the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/turing/pkg/domain"
	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    machine TEXT NOT NULL,
    input TEXT NOT NULL,
    verdict TEXT NOT NULL DEFAULT '',
    halt TEXT NOT NULL DEFAULT '',
    steps INTEGER NOT NULL DEFAULT 0,
    final_state TEXT NOT NULL DEFAULT '',
    tape TEXT NOT NULL DEFAULT '',
    error TEXT NOT NULL DEFAULT '',
    started_at TEXT NOT NULL,
    duration_ns INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// timeLayout is fixed-width so started_at sorts lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements ports.RunStore on a single SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save inserts or replaces the record.
func (s *Store) Save(ctx context.Context, r *domain.RunRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, machine, input, verdict, halt, steps, final_state, tape, error, started_at, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			machine = excluded.machine,
			input = excluded.input,
			verdict = excluded.verdict,
			halt = excluded.halt,
			steps = excluded.steps,
			final_state = excluded.final_state,
			tape = excluded.tape,
			error = excluded.error,
			started_at = excluded.started_at,
			duration_ns = excluded.duration_ns`,
		r.ID, r.Machine, r.Input, string(r.Verdict), string(r.Halt), r.Steps, r.FinalState, r.Tape, r.Error,
		r.StartedAt.UTC().Format(timeLayout), int64(r.Duration),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", r.ID, err)
	}
	return nil
}

// Load reads one record.
func (s *Store) Load(ctx context.Context, id string) (*domain.RunRecord, error) {
	var (
		r         domain.RunRecord
		verdict   string
		halt      string
		startedAt string
		duration  int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, machine, input, verdict, halt, steps, final_state, tape, error, started_at, duration_ns
		FROM runs WHERE id = ?`, id).Scan(
		&r.ID, &r.Machine, &r.Input, &verdict, &halt, &r.Steps, &r.FinalState, &r.Tape, &r.Error, &startedAt, &duration,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	r.Verdict = domain.Verdict(verdict)
	r.Halt = domain.HaltReason(halt)
	r.Duration = time.Duration(duration)
	r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return nil, fmt.Errorf("run %s: bad started_at %q: %w", id, startedAt, err)
	}
	return &r, nil
}

// Delete removes one record.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	return nil
}

// List returns run IDs oldest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
