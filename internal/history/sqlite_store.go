package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteFileName is the database file name inside the state directory.
const SQLiteFileName = "history.db"

// SQLiteStore persists entries in SQLite. Each row keeps the entry as a JSON
// payload; seq preserves insertion order.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS dispatches (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			timestamp INTEGER NOT NULL,
			tool TEXT NOT NULL,
			status TEXT NOT NULL,
			payload TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_dispatches_timestamp ON dispatches(timestamp);
		CREATE INDEX IF NOT EXISTS idx_dispatches_status ON dispatches(status);
	`)
	return err
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, entry Entry, maxEntries int) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling entry: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO dispatches (id, timestamp, tool, status, payload)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp.UnixNano(), entry.Tool, entry.Status, string(payload),
	); err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}

	if maxEntries > 0 {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM dispatches
			WHERE seq NOT IN (SELECT seq FROM dispatches ORDER BY seq DESC LIMIT ?)`,
			maxEntries,
		); err != nil {
			return fmt.Errorf("pruning entries: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entry: %w", err)
	}
	return nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM dispatches
		ORDER BY seq DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		var entry Entry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// Clear implements Store.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM dispatches`); err != nil {
		return fmt.Errorf("clearing entries: %w", err)
	}
	return nil
}
