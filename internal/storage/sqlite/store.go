// Package sqlite provides SQLite-backed implementations of the task,
// ledger, and summary stores. The engines only see the store interfaces;
// nothing outside this package speaks SQL.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL UNIQUE,
	category        TEXT NOT NULL DEFAULT '',
	frequency       TEXT NOT NULL,
	scheduled_date  TEXT NOT NULL DEFAULT '',
	priority        TEXT NOT NULL,
	status          TEXT NOT NULL,
	completion_note TEXT NOT NULL DEFAULT '',
	time_spent      INTEGER NOT NULL DEFAULT 0,
	completed_at    TEXT,
	created_at      TEXT NOT NULL,
	updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS completions (
	task_id   TEXT NOT NULL,
	date      TEXT NOT NULL,
	completed INTEGER NOT NULL,
	PRIMARY KEY (task_id, date)
);

CREATE TABLE IF NOT EXISTS summaries (
	date                  TEXT PRIMARY KEY,
	total_tasks           INTEGER NOT NULL,
	completed_tasks       INTEGER NOT NULL,
	completion_percentage REAL NOT NULL,
	streak                INTEGER NOT NULL,
	longest_streak        INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS quotes (
	id         TEXT PRIMARY KEY,
	quote_text TEXT NOT NULL
);
`

// Store owns the database handle and hands out per-entity repositories.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Tasks() *TaskRepo         { return &TaskRepo{db: s.db} }
func (s *Store) Ledger() *LedgerRepo      { return &LedgerRepo{db: s.db} }
func (s *Store) Summaries() *SummaryStore { return &SummaryStore{db: s.db} }
func (s *Store) Quotes() *QuoteRepo       { return &QuoteRepo{db: s.db} }
