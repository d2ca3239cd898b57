package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threatline/sigscan/pkg/types"
)

// backends returns one store of each backend for shared test coverage.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := New(Config{Path: filepath.Join(t.TempDir(), "scan.db")})
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	mem, err := New(Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { mem.Close() })

	return map[string]Store{"sqlite": sqlite, "memory": mem}
}

func TestNewRequiresPath(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestAddAndGetRecords(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.AddRecord(&types.Record{Path: "/bin/a", Outcome: types.OutcomeInfected}))
			require.NoError(t, s.AddRecord(&types.Record{Path: "/bin/b", Outcome: types.OutcomeClean}))
			require.NoError(t, s.AddRecord(&types.Record{Path: "/root/x", Outcome: types.OutcomeError, Detail: "permission denied"}))

			records, err := s.GetRecords()
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, "/bin/a", records[0].Path)
			assert.Equal(t, types.OutcomeInfected, records[0].Outcome)
			assert.Equal(t, "permission denied", records[2].Detail)

			n, err := s.Count()
			require.NoError(t, err)
			assert.Equal(t, 3, n)
		})
	}
}

func TestAddRecordIdempotent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			rec := &types.Record{Path: "/bin/dup", Outcome: types.OutcomeInfected}
			require.NoError(t, s.AddRecord(rec))
			require.NoError(t, s.AddRecord(rec))

			n, err := s.Count()
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestGetByOutcome(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.AddRecord(&types.Record{Path: "/bin/a", Outcome: types.OutcomeInfected}))
			require.NoError(t, s.AddRecord(&types.Record{Path: "/bin/b", Outcome: types.OutcomeClean}))
			require.NoError(t, s.AddRecord(&types.Record{Path: "/bin/c", Outcome: types.OutcomeInfected}))

			infected, err := s.GetByOutcome(types.OutcomeInfected)
			require.NoError(t, err)
			require.Len(t, infected, 2)
			assert.Equal(t, "/bin/a", infected[0].Path)
			assert.Equal(t, "/bin/c", infected[1].Path)

			errored, err := s.GetByOutcome(types.OutcomeError)
			require.NoError(t, err)
			assert.Empty(t, errored)
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.AddRecord(&types.Record{Path: "/bin/a", Outcome: types.OutcomeInfected}))
	require.NoError(t, s.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.GetRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "/bin/a", records[0].Path)
}

func TestMemoryStoreCopiesRecords(t *testing.T) {
	s := NewMemory()
	rec := &types.Record{Path: "/bin/a", Outcome: types.OutcomeClean}
	require.NoError(t, s.AddRecord(rec))

	rec.Path = "mutated"

	records, err := s.GetRecords()
	require.NoError(t, err)
	assert.Equal(t, "/bin/a", records[0].Path)
}
