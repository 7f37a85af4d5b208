package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/core/ports/driven"
)

// Ensure ResultStore implements the interface.
var _ driven.ResultStore = (*ResultStore)(nil)

// ResultStore persists the result set as an indented JSON file so
// successive runs diff cleanly under version control.
type ResultStore struct {
	path string
}

// storeFile is the on-disk format. The header fields are informational;
// Regions carries the data.
type storeFile struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Resolved    int              `json:"resolved"`
	Total       int              `json:"total"`
	Regions     domain.ResultSet `json:"regions"`
}

// NewResultStore creates a result store for the given file path.
func NewResultStore(path string) *ResultStore {
	return &ResultStore{path: path}
}

// Load reads the store from the previous run. A missing file is a
// normal first run and yields an empty set.
func (s *ResultStore) Load(_ context.Context) (domain.ResultSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ResultSet{}, nil
		}
		return nil, fmt.Errorf("reading result store: %w", err)
	}

	var stored storeFile
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parsing result store: %w", err)
	}

	if stored.Regions == nil {
		stored.Regions = domain.ResultSet{}
	}
	return stored.Regions, nil
}

// Save rewrites the store wholesale. The write goes through a temp file
// and rename so a crash mid-write never leaves a truncated store.
func (s *ResultStore) Save(_ context.Context, set domain.ResultSet, generatedAt time.Time) error {
	stored := storeFile{
		GeneratedAt: generatedAt.UTC(),
		Resolved:    set.LenWithData(),
		Total:       set.Len(),
		Regions:     set,
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".results-*.json")
	if err != nil {
		return fmt.Errorf("creating temp store: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing result store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp store: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing result store: %w", err)
	}

	return nil
}
