package driving

import (
	"context"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
)

// Resolver maps one catalog locality to its canonical fiscal entity.
type Resolver interface {
	// Resolve tries the query strategies for ref in order and returns
	// the first acceptable match. Returns domain.ErrNoMatch when every
	// strategy is exhausted; a wrong guess is never returned in place
	// of a miss.
	Resolve(ctx context.Context, ref domain.LocalityRef) (*domain.ResolvedMatch, error)
}

// Aggregator fetches the statistics for a resolved entity.
type Aggregator interface {
	// Aggregate fetches the tax and housing figures concurrently and
	// combines them. A record with neither figure is returned together
	// with domain.ErrNoStatistics.
	Aggregate(ctx context.Context, match *domain.ResolvedMatch) (domain.StatRecord, error)
}
