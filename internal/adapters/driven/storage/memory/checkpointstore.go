package memory

import (
	"context"
	"sync"
	"time"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driven"
)

// Ensure CheckpointStore implements the interface.
var _ driven.CheckpointStore = (*CheckpointStore)(nil)

// CheckpointEntry is one journalled locality.
type CheckpointEntry struct {
	RunID  string
	Region string
	Name   string
	Record domain.StatRecord
	Reason domain.FailureReason
}

// CheckpointStore is an in-memory implementation of driven.CheckpointStore.
type CheckpointStore struct {
	mu      sync.RWMutex
	entries []CheckpointEntry
	runs    map[string]bool // runID -> finished
}

// NewCheckpointStore creates an empty in-memory checkpoint store.
func NewCheckpointStore() *CheckpointStore {
	return &CheckpointStore{runs: make(map[string]bool)}
}

// StartRun registers a new run.
func (s *CheckpointStore) StartRun(_ context.Context, runID string, _ int, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[runID] = false
	return nil
}

// RecordLocality journals one merged locality.
func (s *CheckpointStore) RecordLocality(_ context.Context, runID, region, name string, rec domain.StatRecord, reason domain.FailureReason) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, CheckpointEntry{
		RunID:  runID,
		Region: region,
		Name:   name,
		Record: rec,
		Reason: reason,
	})
	return nil
}

// FinishRun marks the run complete.
func (s *CheckpointStore) FinishRun(_ context.Context, runID string, _, _ int, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[runID] = true
	return nil
}

// Close releases resources.
func (s *CheckpointStore) Close() error {
	return nil
}

// Entries returns the journalled localities. Test helper.
func (s *CheckpointStore) Entries() []CheckpointEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CheckpointEntry(nil), s.entries...)
}

// Finished reports whether FinishRun was called for runID. Test helper.
func (s *CheckpointStore) Finished(runID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs[runID]
}
