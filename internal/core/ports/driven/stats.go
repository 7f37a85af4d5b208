package driven

import (
	"context"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
)

// TaxSource provides revenue figures keyed by fiscal identifier.
type TaxSource interface {
	// Revenue returns the reported revenue rows for one entity and
	// year. Only rows whose code equals the configured category are
	// consulted by the aggregator.
	Revenue(ctx context.Context, taxID string, year int) ([]domain.RevenueRow, error)
}

// HousingSource provides housing-unit observations keyed by the
// territorial sub-code.
type HousingSource interface {
	// Observations returns all available yearly observations for one
	// sub-code, unordered.
	Observations(ctx context.Context, subCode string) ([]domain.HousingObservation, error)
}
