package store

import (
	"fmt"

	"github.com/threatline/sigscan/pkg/types"
)

// Store persists per-file scan records so a completed run can be
// reported on later. This interface abstracts the underlying backend.
type Store interface {
	// AddRecord stores one per-file record. Inserting the same
	// (path, outcome) pair twice is a no-op.
	AddRecord(rec *types.Record) error

	// GetRecords retrieves all records.
	GetRecords() ([]*types.Record, error)

	// GetByOutcome retrieves records with the given outcome.
	GetByOutcome(outcome types.Outcome) ([]*types.Record, error)

	// Count returns the number of stored records.
	Count() (int, error)

	// Close closes the backend.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}

// New creates a Store. ":memory:" selects the map-backed store;
// any other path selects SQLite.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
