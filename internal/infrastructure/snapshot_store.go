package infrastructure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	// Registers the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"
)

// SnapshotKeyPrefix is the prefix of every persisted tool-state key.
const SnapshotKeyPrefix = "tool:"

// SnapshotEntry is one persisted key and its raw value.
type SnapshotEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SnapshotStore reads and writes locally persisted tool state kept in a
// SQLite key/value table. Keys follow tool:<tool-id>:<name>.
type SnapshotStore struct {
	db *sql.DB
}

const snapshotSchema = `CREATE TABLE IF NOT EXISTS tool_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// OpenSnapshotStore opens (and creates if needed) the database at path.
// Use ":memory:" for a throwaway store.
func OpenSnapshotStore(ctx context.Context, path string) (*SnapshotStore, error) {
	if path == "" {
		return nil, errors.New("snapshot store path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	// An in-memory database lives only as long as its connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, snapshotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

// Put stores value under key, replacing any previous value.
func (s *SnapshotStore) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.New("snapshot key is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tool_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Snapshot returns every entry whose key starts with prefix, ordered by key.
// An empty prefix selects all tool-state keys.
func (s *SnapshotStore) Snapshot(ctx context.Context, prefix string) ([]SnapshotEntry, error) {
	if prefix == "" {
		prefix = SnapshotKeyPrefix
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM tool_state WHERE substr(key, 1, ?) = ? ORDER BY key`,
		utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	defer rows.Close()

	entries := []SnapshotEntry{}
	for rows.Next() {
		var e SnapshotEntry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to read snapshot row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	return entries, nil
}

// ToolKey builds the storage key for a tool's named state.
func ToolKey(tool, name string) string {
	return SnapshotKeyPrefix + tool + ":" + strings.TrimSpace(name)
}

// Close releases the database.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
