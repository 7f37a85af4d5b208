package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civita-labs/fiscara-cli/internal/adapters/driven/storage/memory"
	"github.com/civita-labs/fiscara-cli/internal/core/domain"
)

func intPtr(v int) *int { return &v }

// --- Mock implementations ---

// mockResolver implements driving.Resolver with canned matches keyed by
// "region/name".
type mockResolver struct {
	matches map[string]*domain.ResolvedMatch
	calls   []string
}

func (m *mockResolver) Resolve(_ context.Context, ref domain.LocalityRef) (*domain.ResolvedMatch, error) {
	key := ref.Region + "/" + ref.Name
	m.calls = append(m.calls, key)
	if match, ok := m.matches[key]; ok {
		return match, nil
	}
	return nil, domain.ErrNoMatch
}

// mockAggregator implements driving.Aggregator with canned records keyed
// by tax ID.
type mockAggregator struct {
	records map[string]domain.StatRecord
}

func (m *mockAggregator) Aggregate(_ context.Context, match *domain.ResolvedMatch) (domain.StatRecord, error) {
	rec, ok := m.records[match.TaxID]
	if !ok || !rec.HasData() {
		return rec, domain.ErrNoStatistics
	}
	return rec, nil
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		"Alba": {
			"Aiud": domain.KindMunicipality,
			"Blaj": domain.KindMunicipality,
		},
		"Cluj": {
			"Dej": domain.KindMunicipality,
		},
	}
}

func newOrchestrator(
	catalog domain.Catalog,
	initial domain.ResultSet,
	resolver *mockResolver,
	aggregator *mockAggregator,
) (*BatchOrchestrator, *memory.ResultStore, *memory.CheckpointStore) {
	results := memory.NewResultStore(initial)
	checkpoint := memory.NewCheckpointStore()
	orch := NewBatchOrchestrator(
		memory.NewCatalogStore(catalog),
		results,
		resolver,
		aggregator,
		checkpoint,
		time.Millisecond,
	)
	return orch, results, checkpoint
}

func TestRun_ResolvesMissingLocalities(t *testing.T) {
	resolver := &mockResolver{matches: map[string]*domain.ResolvedMatch{
		"Alba/Aiud": {TaxID: "1", SubCode: "101"},
		"Alba/Blaj": {TaxID: "2", SubCode: "102"},
		"Cluj/Dej":  {TaxID: "3", SubCode: "103"},
	}}
	aggregator := &mockAggregator{records: map[string]domain.StatRecord{
		"1": {Tax: 1200.50, TaxYear: intPtr(2024), Houses: 480, HousesYear: intPtr(2023)},
		"2": {Tax: 800, TaxYear: intPtr(2024)},
		"3": {Houses: 50, HousesYear: intPtr(2022)},
	}}
	orch, results, checkpoint := newOrchestrator(testCatalog(), nil, resolver, aggregator)

	report, err := orch.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 3, report.Found)
	assert.Equal(t, 0, report.StillMissing())
	assert.True(t, results.Saved())

	rec, ok := results.Set().Get("Alba", "Aiud")
	require.True(t, ok)
	assert.Equal(t, 1200.50, rec.Tax)

	// Localities processed in (region, name) order.
	assert.Equal(t, []string{"Alba/Aiud", "Alba/Blaj", "Cluj/Dej"}, resolver.calls)

	assert.Equal(t, 3, len(checkpoint.Entries()))
	assert.True(t, checkpoint.Finished(report.RunID))
}

func TestRun_IncrementalSkipsResolved(t *testing.T) {
	initial := domain.ResultSet{
		"Alba": {
			"Aiud": {Tax: 1200, TaxYear: intPtr(2024), Houses: 10, HousesYear: intPtr(2023)},
		},
	}
	resolver := &mockResolver{matches: map[string]*domain.ResolvedMatch{
		"Alba/Blaj": {TaxID: "2"},
		"Cluj/Dej":  {TaxID: "3"},
	}}
	aggregator := &mockAggregator{records: map[string]domain.StatRecord{
		"2": {Tax: 800, TaxYear: intPtr(2024)},
		"3": {Houses: 50, HousesYear: intPtr(2022)},
	}}
	orch, results, _ := newOrchestrator(testCatalog(), initial, resolver, aggregator)

	report, err := orch.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 2, report.Attempted, "stored locality must not be re-queried")
	assert.NotContains(t, resolver.calls, "Alba/Aiud")

	// The prior record is untouched.
	rec, _ := results.Set().Get("Alba", "Aiud")
	assert.Equal(t, 1200.0, rec.Tax)
}

func TestRun_IdempotentWhenEverythingResolved(t *testing.T) {
	initial := domain.ResultSet{
		"Alba": {
			"Aiud": {Tax: 1, TaxYear: intPtr(2024)},
			"Blaj": {Tax: 2, TaxYear: intPtr(2024)},
		},
		"Cluj": {
			"Dej": {Houses: 3, HousesYear: intPtr(2023)},
		},
	}
	resolver := &mockResolver{}
	orch, results, _ := newOrchestrator(testCatalog(), initial, resolver, &mockAggregator{})

	before, err := results.Load(context.Background())
	require.NoError(t, err)

	report, err := orch.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, report.Attempted)
	assert.Empty(t, resolver.calls)
	assert.Equal(t, before, results.Set())
}

func TestRun_FailureReasonClasses(t *testing.T) {
	// Blaj resolves but yields no statistics; Aiud and Dej never match.
	resolver := &mockResolver{matches: map[string]*domain.ResolvedMatch{
		"Alba/Blaj": {TaxID: "2"},
	}}
	aggregator := &mockAggregator{records: map[string]domain.StatRecord{}}
	orch, results, _ := newOrchestrator(testCatalog(), nil, resolver, aggregator)

	report, err := orch.Run(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, report.Found)
	assert.Equal(t, 3, report.StillMissing())

	reasons := make(map[string]domain.FailureReason)
	for _, u := range report.Unresolved {
		reasons[u.Region+"/"+u.Name] = u.Reason
	}
	assert.Equal(t, domain.ReasonNoEntity, reasons["Alba/Aiud"])
	assert.Equal(t, domain.ReasonNoStatistics, reasons["Alba/Blaj"])
	assert.Equal(t, domain.ReasonNoEntity, reasons["Cluj/Dej"])

	// Zero records are still written for visibility.
	rec, ok := results.Set().Get("Alba", "Blaj")
	assert.True(t, ok)
	assert.False(t, rec.HasData())
}

func TestRun_ProgressCallback(t *testing.T) {
	resolver := &mockResolver{matches: map[string]*domain.ResolvedMatch{
		"Alba/Aiud": {TaxID: "1"},
	}}
	aggregator := &mockAggregator{records: map[string]domain.StatRecord{
		"1": {Tax: 100, TaxYear: intPtr(2024)},
	}}
	catalog := domain.Catalog{"Alba": {"Aiud": domain.KindMunicipality, "Blaj": domain.KindMunicipality}}
	orch, _, _ := newOrchestrator(catalog, nil, resolver, aggregator)

	type call struct {
		index, total int
		name         string
		reason       domain.FailureReason
	}
	var calls []call
	_, err := orch.Run(context.Background(), func(index, total int, ref domain.LocalityRef, _ domain.StatRecord, reason domain.FailureReason) {
		calls = append(calls, call{index, total, ref.Name, reason})
	})

	require.NoError(t, err)
	require.Equal(t, 2, len(calls))
	assert.Equal(t, call{1, 2, "Aiud", ""}, calls[0])
	assert.Equal(t, call{2, 2, "Blaj", domain.ReasonNoEntity}, calls[1])
}

func TestRun_CancelledBetweenLocalitiesStillWritesStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch, results, _ := newOrchestrator(testCatalog(), nil, &mockResolver{}, &mockAggregator{})

	report, err := orch.Run(ctx, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, report.Found)
	assert.True(t, results.Saved(), "interruption must not corrupt the store")
}

func TestRun_NoCheckpointStore(t *testing.T) {
	orch := NewBatchOrchestrator(
		memory.NewCatalogStore(domain.Catalog{"Alba": {"Aiud": domain.KindCommune}}),
		memory.NewResultStore(nil),
		&mockResolver{},
		&mockAggregator{},
		nil,
		time.Millisecond,
	)

	_, err := orch.Run(context.Background(), nil)
	require.NoError(t, err)
}
