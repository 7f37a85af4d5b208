package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
)

func intPtr(v int) *int { return &v }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestJournalRunLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	started := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.StartRun(ctx, "run-1", 3, started))

	rec := domain.StatRecord{Tax: 1200.50, TaxYear: intPtr(2024), Houses: 480, HousesYear: intPtr(2023)}
	require.NoError(t, store.RecordLocality(ctx, "run-1", "Alba", "Aiud", rec, ""))
	require.NoError(t, store.RecordLocality(ctx, "run-1", "Alba", "Blaj", domain.StatRecord{}, domain.ReasonNoEntity))

	require.NoError(t, store.FinishRun(ctx, "run-1", 1, 2, started.Add(time.Minute)))

	runs, err := store.Runs(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, len(runs))
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, 3, runs[0].Total)
	assert.Equal(t, 1, runs[0].Found)
	assert.Equal(t, 2, runs[0].Missing)
	require.NotNil(t, runs[0].FinishedAt)
}

func TestJournalUnfinishedRun(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.StartRun(ctx, "run-1", 5, time.Now()))

	runs, err := store.Runs(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, len(runs))
	assert.Nil(t, runs[0].FinishedAt, "a crashed run stays visibly unfinished")
}

func TestRecordLocalityUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.StartRun(ctx, "run-1", 1, time.Now()))
	require.NoError(t, store.RecordLocality(ctx, "run-1", "Alba", "Aiud", domain.StatRecord{}, domain.ReasonNoEntity))

	// A retry within the same run overwrites the earlier entry.
	rec := domain.StatRecord{Tax: 55.5, TaxYear: intPtr(2023)}
	require.NoError(t, store.RecordLocality(ctx, "run-1", "Alba", "Aiud", rec, ""))

	var count int
	row := store.db.QueryRow("SELECT COUNT(*) FROM run_localities WHERE run_id = 'run-1'")
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 1, count)

	var tax float64
	var reason string
	row = store.db.QueryRow("SELECT tax, reason FROM run_localities WHERE run_id = 'run-1'")
	require.NoError(t, row.Scan(&tax, &reason))
	assert.Equal(t, 55.5, tax)
	assert.Empty(t, reason)
}

func TestFailureReasons_LatestRunWins(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	started := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	// First run: both localities fail.
	require.NoError(t, store.StartRun(ctx, "run-1", 2, started))
	require.NoError(t, store.RecordLocality(ctx, "run-1", "Alba", "Aiud", domain.StatRecord{}, domain.ReasonNoEntity))
	require.NoError(t, store.RecordLocality(ctx, "run-1", "Alba", "Blaj", domain.StatRecord{}, domain.ReasonNoEntity))

	// Second run: Aiud resolves, Blaj fails differently.
	require.NoError(t, store.StartRun(ctx, "run-2", 2, started.Add(time.Hour)))
	rec := domain.StatRecord{Tax: 100, TaxYear: intPtr(2024)}
	require.NoError(t, store.RecordLocality(ctx, "run-2", "Alba", "Aiud", rec, ""))
	require.NoError(t, store.RecordLocality(ctx, "run-2", "Alba", "Blaj", domain.StatRecord{}, domain.ReasonNoStatistics))

	reasons, err := store.FailureReasons(ctx)

	require.NoError(t, err)
	_, ok := reasons["Alba"]["Aiud"]
	assert.False(t, ok, "a later success clears the reason")
	assert.Equal(t, domain.ReasonNoStatistics, reasons["Alba"]["Blaj"])
}

func TestFailureReasons_EmptyJournal(t *testing.T) {
	store := newTestStore(t)

	reasons, err := store.FailureReasons(context.Background())

	require.NoError(t, err)
	assert.Empty(t, reasons)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Reopening must not re-apply migrations.
	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var version int
	row := second.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	require.NoError(t, row.Scan(&version))
	assert.Equal(t, 1, version)
}
