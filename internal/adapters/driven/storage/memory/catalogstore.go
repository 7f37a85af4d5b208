// Package memory provides in-memory store implementations, used by
// tests and as a fallback when no persistence is configured.
package memory

import (
	"context"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	catalog domain.Catalog
}

// NewCatalogStore creates a catalog store serving the given catalog.
func NewCatalogStore(catalog domain.Catalog) *CatalogStore {
	return &CatalogStore{catalog: catalog}
}

// Load returns the configured catalog.
func (s *CatalogStore) Load(_ context.Context) (domain.Catalog, error) {
	return s.catalog, nil
}
