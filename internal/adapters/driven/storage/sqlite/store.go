// Package sqlite provides an SQLite-backed journal for batch runs.
//
// The journal is diagnostic only. The JSON result store stays
// authoritative; the journal exists so a run killed before the final
// store write still leaves a per-locality trace to inspect.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/civita-labs/fiscara-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CheckpointStore = (*Store)(nil)

// Store journals batch run progress in an SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite journal at the specified data directory.
// If dataDir is empty, defaults to ~/.fiscara/data/journal.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".fiscara", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "journal.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// StartRun registers a new run.
func (s *Store) StartRun(ctx context.Context, runID string, total int, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, total, started_at)
		VALUES (?, ?, ?)
	`, runID, total, startedAt.UTC())
	if err != nil {
		return fmt.Errorf("starting run: %w", err)
	}
	return nil
}

// RecordLocality journals one merged locality.
func (s *Store) RecordLocality(ctx context.Context, runID, region, name string, rec domain.StatRecord, reason domain.FailureReason) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO run_localities (run_id, region, name, tax, tax_year, houses, houses_year, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, region, name) DO UPDATE SET
			tax = excluded.tax,
			tax_year = excluded.tax_year,
			houses = excluded.houses,
			houses_year = excluded.houses_year,
			reason = excluded.reason,
			recorded_at = CURRENT_TIMESTAMP
	`, runID, region, name, rec.Tax, nullableInt(rec.TaxYear), rec.Houses, nullableInt(rec.HousesYear), string(reason))
	if err != nil {
		return fmt.Errorf("recording locality: %w", err)
	}
	return nil
}

// FinishRun marks the run complete with its final counts.
func (s *Store) FinishRun(ctx context.Context, runID string, found, missing int, finishedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET found = ?, missing = ?, finished_at = ?
		WHERE id = ?
	`, found, missing, finishedAt.UTC(), runID)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	return nil
}

// RunSummary describes one journaled run.
type RunSummary struct {
	ID         string
	Total      int
	Found      int
	Missing    int
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Runs returns all journaled runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, total, found, missing, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.Total, &r.Found, &r.Missing, &r.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// FailureReasons returns the current failure reason class per locality,
// derived from the journal: for each (region, name) the reason recorded
// by the chronologically latest run wins, and a later success clears the
// entry. Localities never journalled are absent.
func (s *Store) FailureReasons(ctx context.Context) (map[string]map[string]domain.FailureReason, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rl.region, rl.name, rl.reason
		FROM run_localities rl
		JOIN runs r ON r.id = rl.run_id
		ORDER BY r.started_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying failure reasons: %w", err)
	}
	defer rows.Close()

	reasons := make(map[string]map[string]domain.FailureReason)
	for rows.Next() {
		var region, name, reason string
		if err := rows.Scan(&region, &name, &reason); err != nil {
			return nil, fmt.Errorf("scanning failure reason: %w", err)
		}
		if reason == "" {
			delete(reasons[region], name)
			continue
		}
		if reasons[region] == nil {
			reasons[region] = make(map[string]domain.FailureReason)
		}
		reasons[region][name] = domain.FailureReason(reason)
	}
	return reasons, rows.Err()
}

// nullableInt converts a *int to a driver-friendly value.
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// migrate applies pending migrations from the embedded filesystem.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
