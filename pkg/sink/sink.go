// Package sink provides the synchronized aggregation point for
// per-file outcomes produced by concurrent scan workers.
package sink

import (
	"sync"

	"github.com/threatline/sigscan/pkg/types"
)

// Sink receives one record per scanned file. Implementations must
// serialize concurrent writers so records never interleave.
type Sink interface {
	Record(rec types.Record)
}

// Memory is a lock-guarded in-memory sink.
// The zero value is ready to use.
type Memory struct {
	mu      sync.RWMutex
	records []types.Record
}

// NewMemory creates an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Record appends a record. Safe for concurrent use.
func (m *Memory) Record(rec types.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
}

// Snapshot returns a copy of all records emitted so far.
func (m *Memory) Snapshot() []types.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Record, len(m.records))
	copy(out, m.records)
	return out
}

// Len returns the number of records emitted so far.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Summary computes per-outcome counts over the current records.
func (m *Memory) Summary() types.Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return types.Summarize(m.records)
}
