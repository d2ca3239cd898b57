package store

import "database/sql"

// schemaSQL defines the records table. (path, outcome) is unique so
// repeated inserts of the same outcome are idempotent.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	path       TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	detail     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(path, outcome)
);

CREATE INDEX IF NOT EXISTS idx_records_outcome ON records(outcome);
`

// CreateSchema initializes the database schema.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}
