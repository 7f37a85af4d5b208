// Package file provides JSON file-backed stores for the locality
// catalog and the result set.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore reads the locality catalog from a JSON file mapping
// region -> locality name -> { kind }.
type CatalogStore struct {
	path string
}

// catalogEntry is one locality in the catalog file.
type catalogEntry struct {
	Kind domain.LocalityKind `json:"kind"`
}

// NewCatalogStore creates a catalog store for the given file path.
func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// Load reads and validates the catalog. Any unreadable file, malformed
// JSON or unknown kind is an error: the catalog is authoritative input
// and a silent partial load would skew every downstream count.
func (s *CatalogStore) Load(_ context.Context) (domain.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var raw map[string]map[string]catalogEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	catalog := make(domain.Catalog, len(raw))
	for region, localities := range raw {
		if len(localities) == 0 {
			return nil, fmt.Errorf("parsing catalog: region %q has no localities", region)
		}
		catalog[region] = make(map[string]domain.LocalityKind, len(localities))
		for name, entry := range localities {
			if !entry.Kind.Valid() {
				return nil, fmt.Errorf("parsing catalog: %s/%s has unknown kind %q", region, name, entry.Kind)
			}
			catalog[region][name] = entry.Kind
		}
	}

	return catalog, nil
}
