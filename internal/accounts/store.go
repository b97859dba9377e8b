// Package accounts persists the account configuration as a JSON document.
// The whole collection is read and written at once; the last writer wins.
package accounts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robinFdr/MailBackup/pkg/models"
)

// Resources is the on-disk account configuration.
type Resources struct {
	StorageLocation string            `json:"storageLocation,omitempty"`
	Accounts        []*models.Account `json:"accounts"`
}

// Store reads and writes one resources file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the whole account collection.
func (s *Store) Load() (*Resources, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resources file: %w", err)
	}

	var res Resources
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to parse resources file: %w", err)
	}
	return &res, nil
}

// Save writes the whole account collection back. The file is replaced
// atomically so an interrupted run cannot truncate it.
func (s *Store) Save(res *Resources) error {
	data, err := json.MarshalIndent(res, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal resources: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create resources directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".resources-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write resources: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace resources file: %w", err)
	}
	return nil
}
