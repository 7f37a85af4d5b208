package driven

import (
	"context"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
)

// EntitySearch provides full-text search over the fiscal entity registry.
// The registry is noisy: one query returns administrative offices mixed
// with schools, courts, hospitals and agencies. An empty result is a
// normal outcome, not an error.
type EntitySearch interface {
	// Search runs one free-text query and returns at most limit
	// candidates in registry relevance order.
	Search(ctx context.Context, query string, limit int) ([]domain.CandidateEntity, error)

	// Close releases resources.
	Close() error
}
