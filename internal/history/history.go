// Package history keeps a local SQLite audit log of the mutations an
// operator has issued: which collection, which operation, which record,
// and how it turned out. The remote store remains the source of truth;
// this log only answers "what did I change from this machine".
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Outcome constants for recorded entries.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Entry is one recorded mutation.
type Entry struct {
	ID         int64
	Timestamp  string // RFC3339
	Collection string
	Op         string
	RecordID   string
	Outcome    string // success or failure
	Detail     string // failure reason or affected record summary
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS mutation_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	collection TEXT NOT NULL,
	op TEXT NOT NULL,
	record_id TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_history_collection ON mutation_history(collection);
`

// Store is a SQLite-backed history store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at the provided path.
func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("history store: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("history store: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history store: open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("history store: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("history store: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one entry. A zero Timestamp is filled with now.
func (s *Store) Record(e Entry) error {
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(
		`INSERT INTO mutation_history (timestamp, collection, op, record_id, outcome, detail)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Timestamp, e.Collection, e.Op, e.RecordID, e.Outcome, e.Detail,
	)
	if err != nil {
		return fmt.Errorf("history store: record entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first. A collection
// filter may be empty to list across collections.
func (s *Store) List(collectionID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, timestamp, collection, op, record_id, outcome, detail
		FROM mutation_history`
	args := []any{}
	if collectionID != "" {
		query += ` WHERE collection = ?`
		args = append(args, collectionID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history store: list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Collection, &e.Op, &e.RecordID, &e.Outcome, &e.Detail); err != nil {
			return nil, fmt.Errorf("history store: scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history store: iterate entries: %w", err)
	}
	return entries, nil
}
