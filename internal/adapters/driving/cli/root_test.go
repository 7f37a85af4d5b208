package cli

import (
	"context"
	"time"

	"github.com/civita-labs/fiscara-cli/internal/adapters/driven/storage/memory"
	"github.com/civita-labs/fiscara-cli/internal/adapters/driven/storage/sqlite"
	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driving"
)

func intPtr(v int) *int { return &v }

// mockBatchRunner implements driving.BatchRunner with a canned report.
type mockBatchRunner struct {
	report *domain.RunReport
	err    error
}

func (m *mockBatchRunner) Run(_ context.Context, progress driving.Progress) (*domain.RunReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	if progress != nil {
		progress(1, 2, domain.LocalityRef{Region: "Alba", Name: "Aiud", Kind: domain.KindMunicipality},
			domain.StatRecord{Tax: 1200.50, TaxYear: intPtr(2024), Houses: 480, HousesYear: intPtr(2023)}, "")
		progress(2, 2, domain.LocalityRef{Region: "Alba", Name: "Blaj", Kind: domain.KindTown},
			domain.StatRecord{}, domain.ReasonNoEntity)
	}
	return m.report, nil
}

// mockResolver implements driving.Resolver.
type mockResolver struct {
	match *domain.ResolvedMatch
	err   error
}

func (m *mockResolver) Resolve(_ context.Context, _ domain.LocalityRef) (*domain.ResolvedMatch, error) {
	return m.match, m.err
}

// mockAggregator implements driving.Aggregator.
type mockAggregator struct {
	rec domain.StatRecord
	err error
}

func (m *mockAggregator) Aggregate(_ context.Context, _ *domain.ResolvedMatch) (domain.StatRecord, error) {
	return m.rec, m.err
}

// mockJournal implements runJournal with canned data.
type mockJournal struct {
	runs    []sqlite.RunSummary
	reasons map[string]map[string]domain.FailureReason
	err     error
}

func (m *mockJournal) Runs(_ context.Context) ([]sqlite.RunSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.runs, nil
}

func (m *mockJournal) FailureReasons(_ context.Context) (map[string]map[string]domain.FailureReason, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.reasons, nil
}

// setupTestServices swaps the package-level services for mocks and
// returns a cleanup function restoring the originals.
func setupTestServices() func() {
	oldBatch := batchRunner
	oldResolver := resolverService
	oldAggregator := aggregatorService
	oldResults := resultStore
	oldConfig := configStore
	oldJournal := journal

	batchRunner = &mockBatchRunner{report: &domain.RunReport{
		Total:     2,
		Attempted: 2,
		Found:     1,
		Unresolved: []domain.Unresolved{
			{Region: "Alba", Name: "Blaj", Reason: domain.ReasonNoEntity},
		},
	}}
	resolverService = &mockResolver{match: &domain.ResolvedMatch{
		TaxID:        "4613636",
		SubCode:      "1222",
		DisplayName:  "MUNICIPIUL AIUD",
		Region:       "Alba",
		LocalityName: "Aiud",
	}}
	aggregatorService = &mockAggregator{rec: domain.StatRecord{
		Tax: 1200.50, TaxYear: intPtr(2024), Houses: 480, HousesYear: intPtr(2023),
	}}
	resultStore = memory.NewResultStore(domain.ResultSet{
		"Alba": {
			"Aiud": {Tax: 1200.50, TaxYear: intPtr(2024)},
			"Blaj": {},
		},
	})
	finished := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	journal = &mockJournal{
		runs: []sqlite.RunSummary{
			{ID: "run-1", Total: 2, Found: 1, Missing: 1, StartedAt: finished.Add(-time.Minute), FinishedAt: &finished},
		},
		reasons: map[string]map[string]domain.FailureReason{
			"Alba": {"Blaj": domain.ReasonNoEntity},
		},
	}

	return func() {
		batchRunner = oldBatch
		resolverService = oldResolver
		aggregatorService = oldAggregator
		resultStore = oldResults
		configStore = oldConfig
		journal = oldJournal
	}
}
