// Package storage persists the budget ledger as a single JSON file.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kibble-money/kibble/internal/common"
	"github.com/kibble-money/kibble/internal/model"
)

// JSONStore reads and writes the whole category mapping as one JSON object
// keyed by normalized category name. The file shape is fixed: each value
// carries exactly name, limit and spent.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the persisted mapping. A missing file means an empty budget, not
// an error. Content that does not parse as the expected mapping shape is
// reported as a corrupt store.
func (s *JSONStore) Load() (map[string]*model.Category, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no budget file yet", "path", s.path)
			return make(map[string]*model.Category), nil
		}
		return nil, fmt.Errorf("failed to read budget file %s: %w", s.path, err)
	}

	var categories map[string]*model.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrCorruptStore, err)
	}
	if categories == nil {
		categories = make(map[string]*model.Category)
	}

	// Key invariant: every key is normalized and matches its category's name.
	// A non-normalized key would load but never be reachable by lookup.
	for key, category := range categories {
		if category == nil {
			return nil, fmt.Errorf("%w: entry %q has no record", common.ErrCorruptStore, key)
		}
		if key != strings.ToLower(strings.TrimSpace(key)) {
			return nil, fmt.Errorf("%w: entry %q is not a normalized category name", common.ErrCorruptStore, key)
		}
		if category.Name != key {
			return nil, fmt.Errorf("%w: entry %q names category %q", common.ErrCorruptStore, key, category.Name)
		}
	}

	slog.Debug("budget loaded", "path", s.path, "categories", len(categories))
	return categories, nil
}

// Save replaces the budget file with the given mapping. The write goes to a
// temp file in the same directory first and is renamed into place, so readers
// never observe a partial file.
func (s *JSONStore) Save(categories map[string]*model.Category) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(categories, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode budget: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".budget-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write budget: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace budget file: %w", err)
	}

	slog.Debug("budget saved", "path", s.path, "categories", len(categories))
	return nil
}
