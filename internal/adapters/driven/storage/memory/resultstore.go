package memory

import (
	"context"
	"sync"
	"time"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driven"
)

// Ensure ResultStore implements the interface.
var _ driven.ResultStore = (*ResultStore)(nil)

// ResultStore is an in-memory implementation of driven.ResultStore.
type ResultStore struct {
	mu    sync.RWMutex
	set   domain.ResultSet
	saved bool
}

// NewResultStore creates a result store seeded with initial, which may
// be nil for an empty store.
func NewResultStore(initial domain.ResultSet) *ResultStore {
	if initial == nil {
		initial = make(domain.ResultSet)
	}
	return &ResultStore{set: initial}
}

// Load returns a deep copy of the current set, so callers mutate their
// own view until Save.
func (s *ResultStore) Load(_ context.Context) (domain.ResultSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(domain.ResultSet, len(s.set))
	for region, localities := range s.set {
		out[region] = make(map[string]domain.StatRecord, len(localities))
		for name, rec := range localities {
			out[region][name] = rec
		}
	}
	return out, nil
}

// Save replaces the stored set.
func (s *ResultStore) Save(_ context.Context, set domain.ResultSet, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
	s.saved = true
	return nil
}

// Saved reports whether Save has been called.
func (s *ResultStore) Saved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved
}

// Set returns the stored set without copying. Test helper.
func (s *ResultStore) Set() domain.ResultSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}
