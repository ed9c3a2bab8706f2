// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/webmatic-tui/internal/model"
)

// SchemaVersion tracks the cache schema for future migrations.
const SchemaVersion = 1

const cacheSchema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Messages table: one row per transcript message, ordered by seq.
CREATE TABLE IF NOT EXISTS messages (
    project_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at INTEGER NOT NULL, -- Unix timestamp
    PRIMARY KEY (project_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_messages_project ON messages(project_id);
`

const initCacheMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`

// =============================================================================
// WARM-START CACHE
// =============================================================================

// Cache persists the last known transcript per project so the chat pane
// can render immediately on open. It is advisory only: backend truth
// always replaces cached content once fetched.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (or creates) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure cache database: %w", err)
		}
	}

	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	if _, err := db.Exec(initCacheMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache metadata: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Save replaces the cached transcript for a project. Pending entries
// should be excluded by the caller; the cache holds acknowledged history.
func (c *Cache) Save(projectID string, msgs []model.Message) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("failed to clear cached transcript: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO messages (project_id, seq, role, content, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range msgs {
		ts := m.Timestamp
		if ts.IsZero() {
			ts = time.Now()
		}
		if _, err := stmt.Exec(projectID, i, string(m.Role), m.Content, ts.Unix()); err != nil {
			return fmt.Errorf("failed to cache message %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load returns the cached transcript for a project in order, or an empty
// slice when nothing is cached.
func (c *Cache) Load(projectID string) ([]model.Message, error) {
	rows, err := c.db.Query(
		"SELECT role, content, created_at FROM messages WHERE project_id = ? ORDER BY seq",
		projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached transcript: %w", err)
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		var (
			role    string
			content string
			created int64
		)
		if err := rows.Scan(&role, &content, &created); err != nil {
			return nil, fmt.Errorf("failed to scan cached message: %w", err)
		}
		msgs = append(msgs, model.Message{
			Role:      model.Role(role),
			Content:   content,
			Timestamp: time.Unix(created, 0),
		})
	}
	return msgs, rows.Err()
}

// Delete removes the cached transcript for a project, used when the
// project itself is deleted.
func (c *Cache) Delete(projectID string) error {
	_, err := c.db.Exec("DELETE FROM messages WHERE project_id = ?", projectID)
	if err != nil {
		return fmt.Errorf("failed to delete cached transcript: %w", err)
	}
	return nil
}
