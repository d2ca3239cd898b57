package store

import (
	"sync"

	"github.com/threatline/sigscan/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*types.Record
	seen    map[recordKey]bool
}

type recordKey struct {
	path    string
	outcome types.Outcome
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		seen: make(map[recordKey]bool),
	}
}

// AddRecord stores a record, deduplicated on (path, outcome).
func (m *MemoryStore) AddRecord(rec *types.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := recordKey{path: rec.Path, outcome: rec.Outcome}
	if m.seen[key] {
		return nil
	}
	m.seen[key] = true

	// Store a copy so callers cannot mutate stored state.
	cp := *rec
	m.records = append(m.records, &cp)
	return nil
}

// GetRecords retrieves all records.
func (m *MemoryStore) GetRecords() ([]*types.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*types.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// GetByOutcome retrieves records with the given outcome.
func (m *MemoryStore) GetByOutcome(outcome types.Outcome) ([]*types.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*types.Record, 0)
	for _, rec := range m.records {
		if rec.Outcome == outcome {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Count returns the number of stored records.
func (m *MemoryStore) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
