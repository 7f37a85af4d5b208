package driving

import (
	"context"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
)

// Progress is invoked once per processed locality, in order.
// index is 1-based; rec is the merged record; reason is empty when the
// locality resolved with data.
type Progress func(index, total int, ref domain.LocalityRef, rec domain.StatRecord, reason domain.FailureReason)

// BatchRunner drives resolution and aggregation across the catalog.
type BatchRunner interface {
	// Run processes every retry target in the catalog and rewrites the
	// result store. Re-runs are incremental: localities already stored
	// with data are skipped. Only setup failures return an error.
	Run(ctx context.Context, progress Progress) (*domain.RunReport, error)
}
