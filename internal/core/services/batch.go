package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driven"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driving"
	"github.com/civita-labs/fiscara-cli/internal/logger"
)

// Ensure BatchOrchestrator implements the interface.
var _ driving.BatchRunner = (*BatchOrchestrator)(nil)

// DefaultPaceDelay is the flat inter-locality delay. Not a retry
// backoff: the external registry has no documented concurrency budget,
// so one paced worker is the whole throughput model.
const DefaultPaceDelay = 1500 * time.Millisecond

// BatchOrchestrator drives resolution and aggregation across the whole
// catalog: LOAD_CATALOG -> LOAD_STORE -> SELECT_TARGETS ->
// (RESOLVE -> AGGREGATE -> MERGE)* -> WRITE_STORE.
type BatchOrchestrator struct {
	catalog    driven.CatalogStore
	results    driven.ResultStore
	resolver   driving.Resolver
	aggregator driving.Aggregator
	checkpoint driven.CheckpointStore
	pace       *rate.Limiter

	mu      sync.Mutex
	running bool
}

// NewBatchOrchestrator creates a batch orchestrator. checkpoint may be
// nil; paceDelay zero or negative falls back to DefaultPaceDelay.
func NewBatchOrchestrator(
	catalog driven.CatalogStore,
	results driven.ResultStore,
	resolver driving.Resolver,
	aggregator driving.Aggregator,
	checkpoint driven.CheckpointStore,
	paceDelay time.Duration,
) *BatchOrchestrator {
	if paceDelay <= 0 {
		paceDelay = DefaultPaceDelay
	}
	return &BatchOrchestrator{
		catalog:    catalog,
		results:    results,
		resolver:   resolver,
		aggregator: aggregator,
		checkpoint: checkpoint,
		pace:       rate.NewLimiter(rate.Every(paceDelay), 1),
	}
}

// Run processes every retry target and rewrites the result store. Only
// setup failures (unreadable catalog or store) return an error; every
// per-locality failure is recorded in the report and the run continues.
// Cancelling ctx stops the loop between localities and still writes the
// store, so prior progress is never lost.
func (o *BatchOrchestrator) Run(ctx context.Context, progress driving.Progress) (*domain.RunReport, error) {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return nil, domain.ErrRunInProgress
	}
	o.running = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	// 1. Load the catalog. Fatal on failure, before any network call.
	catalog, err := o.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	// 2. Load the store from the previous run.
	set, err := o.results.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load result store: %w", err)
	}

	// 3. Select retry targets: absent from the store, or stored with
	// zero tax and zero houses. Resolved-with-data localities are
	// never re-queried, which makes re-runs idempotent.
	targets := selectTargets(catalog, set)

	report := &domain.RunReport{
		RunID:     uuid.NewString(),
		Total:     catalog.Len(),
		Attempted: len(targets),
		StartedAt: time.Now(),
	}
	logger.Info("run %s: %d of %d localities need data", report.RunID, len(targets), report.Total)

	if o.checkpoint != nil {
		if err := o.checkpoint.StartRun(ctx, report.RunID, len(targets), report.StartedAt); err != nil {
			logger.Warn("checkpoint start: %v", err)
		}
	}

	// 4. Sequential paced loop. One logical worker: rate-limit safety
	// takes priority over throughput.
	for i, ref := range targets {
		if err := o.pace.Wait(ctx); err != nil {
			logger.Warn("run interrupted after %d localities: %v", i, err)
			break
		}

		rec, reason := o.processLocality(ctx, ref)

		// 5. Merge fills gaps only; a zero re-resolution never
		// regresses a stored record.
		set.Merge(ref.Region, ref.Name, rec)

		if reason == "" {
			report.Found++
		} else {
			report.Unresolved = append(report.Unresolved, domain.Unresolved{
				Region: ref.Region,
				Name:   ref.Name,
				Reason: reason,
			})
		}

		if o.checkpoint != nil {
			if err := o.checkpoint.RecordLocality(ctx, report.RunID, ref.Region, ref.Name, rec, reason); err != nil {
				logger.Warn("checkpoint %s/%s: %v", ref.Region, ref.Name, err)
			}
		}
		if progress != nil {
			progress(i+1, len(targets), ref, rec, reason)
		}
	}

	// 6. Rewrite the store wholesale. The merge rules above guarantee
	// it is a superset (by records with data) of the pre-run store.
	report.FinishedAt = time.Now()
	if err := o.results.Save(ctx, set, report.FinishedAt); err != nil {
		return nil, fmt.Errorf("write result store: %w", err)
	}

	if o.checkpoint != nil {
		if err := o.checkpoint.FinishRun(ctx, report.RunID, report.Found, report.StillMissing(), report.FinishedAt); err != nil {
			logger.Warn("checkpoint finish: %v", err)
		}
	}

	logger.Info("run %s: %d found, %d still missing", report.RunID, report.Found, report.StillMissing())
	return report, nil
}

// processLocality resolves and aggregates one locality. Failures are
// swallowed here, at the locality boundary: the returned reason class is
// the only trace they leave.
func (o *BatchOrchestrator) processLocality(ctx context.Context, ref domain.LocalityRef) (domain.StatRecord, domain.FailureReason) {
	match, err := o.resolver.Resolve(ctx, ref)
	if err != nil {
		if !errors.Is(err, domain.ErrNoMatch) {
			logger.Warn("resolve %s/%s: %v", ref.Region, ref.Name, err)
		}
		return domain.StatRecord{}, domain.ReasonNoEntity
	}

	rec, err := o.aggregator.Aggregate(ctx, match)
	if err != nil {
		if !errors.Is(err, domain.ErrNoStatistics) {
			logger.Warn("aggregate %s/%s: %v", ref.Region, ref.Name, err)
		}
		return rec, domain.ReasonNoStatistics
	}
	return rec, ""
}

// selectTargets returns the catalog entries that still need data, in
// stable (region, name) order.
func selectTargets(catalog domain.Catalog, set domain.ResultSet) []domain.LocalityRef {
	var targets []domain.LocalityRef
	for _, ref := range catalog.Refs() {
		rec, ok := set.Get(ref.Region, ref.Name)
		if !ok || !rec.HasData() {
			targets = append(targets, ref)
		}
	}
	return targets
}
