package driven

import (
	"context"
	"time"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
)

// CatalogStore loads the authoritative locality catalog.
// The catalog is read-only input, never mutated by this system.
type CatalogStore interface {
	// Load reads the full catalog. An unreadable or unparseable
	// catalog is a fatal setup failure.
	Load(ctx context.Context) (domain.Catalog, error)
}

// ResultStore persists the region -> locality -> StatRecord mapping.
type ResultStore interface {
	// Load reads the store from the previous run. A missing store is
	// not an error: it returns an empty ResultSet.
	Load(ctx context.Context) (domain.ResultSet, error)

	// Save rewrites the store wholesale with a header noting the
	// generation time and resolved/total counts. The written store
	// must be a superset (by records with data) of the loaded one.
	Save(ctx context.Context, set domain.ResultSet, generatedAt time.Time) error
}

// CheckpointStore journals per-locality progress during a batch run so a
// crash before the final store write can be diagnosed. Optional: the
// orchestrator runs without one.
type CheckpointStore interface {
	// StartRun registers a new run.
	StartRun(ctx context.Context, runID string, total int, startedAt time.Time) error

	// RecordLocality journals one merged locality. reason is empty for
	// resolved localities, otherwise the failure reason class.
	RecordLocality(ctx context.Context, runID, region, name string, rec domain.StatRecord, reason domain.FailureReason) error

	// FinishRun marks the run complete with its final counts.
	FinishRun(ctx context.Context, runID string, found, missing int, finishedAt time.Time) error

	// Close releases resources.
	Close() error
}
