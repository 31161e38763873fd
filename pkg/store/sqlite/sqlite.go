// Package sqlite provides a SQLite-backed run store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/agentlogco/spool/pkg/ontology"
	"github.com/agentlogco/spool/pkg/store"
)

// Driver implements store.Driver using SQLite. Runs are stored as their
// serialized documents, with the id, name, status, and start time lifted into
// columns for listing.
type Driver struct {
	db *sql.DB
}

// NewDriver creates a new SQLite-backed store.
// The dbPath can be a file path or ":memory:" for an in-memory database.
func NewDriver(dbPath string) (*Driver, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Driver{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate creates the necessary tables if they don't exist.
func (s *Driver) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		start_time TEXT NOT NULL,
		document TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_start_time ON runs(start_time);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Put stores a run, replacing any existing row with the same id. Returns
// true if the run was newly inserted.
func (s *Driver) Put(ctx context.Context, run *ontology.Run) (bool, error) {
	if run == nil {
		return false, fmt.Errorf("cannot store nil run")
	}

	document, err := ontology.MarshalRun(run)
	if err != nil {
		return false, fmt.Errorf("failed to marshal run: %w", err)
	}

	exists, err := s.Has(ctx, run.ID)
	if err != nil {
		return false, err
	}

	query := `INSERT OR REPLACE INTO runs (id, name, status, start_time, document) VALUES (?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		run.ID, run.Name, string(run.Status), run.StartTime.Format(time.RFC3339Nano), string(document))
	if err != nil {
		return false, fmt.Errorf("failed to insert run: %w", err)
	}

	return !exists, nil
}

// Get retrieves a run by its id.
func (s *Driver) Get(ctx context.Context, id string) (*ontology.Run, error) {
	query := `SELECT document FROM runs WHERE id = ?`

	row := s.db.QueryRowContext(ctx, query, id)

	var document string
	err := row.Scan(&document)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run, err := ontology.UnmarshalRun([]byte(document))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}

	return run, nil
}

// Has checks if a run exists by its id.
func (s *Driver) Has(ctx context.Context, id string) (bool, error) {
	query := `SELECT 1 FROM runs WHERE id = ? LIMIT 1`

	row := s.db.QueryRowContext(ctx, query, id)

	var exists int
	err := row.Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return true, nil
}

// List returns all runs ordered by start time.
func (s *Driver) List(ctx context.Context) ([]*ontology.Run, error) {
	query := `SELECT document FROM runs ORDER BY start_time, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*ontology.Run
	for rows.Next() {
		var document string
		if err := rows.Scan(&document); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run, err := ontology.UnmarshalRun([]byte(document))
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Delete removes a run by its id.
func (s *Driver) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM runs WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deletion: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound{ID: id}
	}

	return nil
}

// Close closes the underlying database.
func (s *Driver) Close() error {
	return s.db.Close()
}
