package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/threatline/sigscan/pkg/types"
)

// SQLiteStore implements Store using SQLite (CGO-free driver).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-backed store at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddRecord stores a record, deduplicated on (path, outcome).
func (s *SQLiteStore) AddRecord(rec *types.Record) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO records (path, outcome, detail) VALUES (?, ?, ?)",
		rec.Path, string(rec.Outcome), rec.Detail,
	)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

// GetRecords retrieves all records in insertion order.
func (s *SQLiteStore) GetRecords() ([]*types.Record, error) {
	rows, err := s.db.Query("SELECT path, outcome, detail FROM records ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetByOutcome retrieves records with the given outcome.
func (s *SQLiteStore) GetByOutcome(outcome types.Outcome) ([]*types.Record, error) {
	rows, err := s.db.Query(
		"SELECT path, outcome, detail FROM records WHERE outcome = ? ORDER BY id",
		string(outcome),
	)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanRecords(rows *sql.Rows) ([]*types.Record, error) {
	records := make([]*types.Record, 0)
	for rows.Next() {
		var rec types.Record
		var outcome string
		if err := rows.Scan(&rec.Path, &outcome, &rec.Detail); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		rec.Outcome = types.Outcome(outcome)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return records, nil
}
