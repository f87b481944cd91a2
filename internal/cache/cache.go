// Package cache keeps a best-effort local copy of the event list in a
// SQLite file so `stagehand events` still answers when the backend is
// unreachable. Server data always wins: every successful list fetch
// overwrites the cache in full. Nothing here is authoritative.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"stagehand/internal/eventsapi"
	"stagehand/internal/logging"
)

// EventCache wraps the SQLite handle.
type EventCache struct {
	db *sql.DB
	mu sync.Mutex
}

// Open initializes the cache database at path, creating the directory and
// schema as needed.
func Open(path string) (*EventCache, error) {
	timer := logging.StartTimer(logging.CategoryCache, "Open")
	defer timer.Stop()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.Get(logging.CategoryCache).Debug("failed to set busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.Get(logging.CategoryCache).Debug("failed to set journal_mode=WAL: %v", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id         TEXT PRIMARY KEY,
		name       TEXT,
		sport      TEXT,
		format     TEXT,
		status     TEXT,
		start_date TEXT,
		athletes   INTEGER,
		event_code TEXT,
		location   TEXT
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	logging.Cache("opened event cache at %s", path)
	return &EventCache{db: db}, nil
}

// SaveList replaces the cached list with the given server rows, atomically.
func (c *EventCache) SaveList(list []eventsapi.Summary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning cache refresh: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM events"); err != nil {
		return fmt.Errorf("clearing cached events: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO events
		(id, name, sport, format, status, start_date, athletes, event_code, location)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing cache insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range list {
		if _, err := stmt.Exec(s.ID, s.Name, s.Sport, s.Format, s.Status,
			s.StartDate, s.ParticipantCount, s.EventCode, s.Location); err != nil {
			return fmt.Errorf("caching event %s: %w", s.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cache refresh: %w", err)
	}
	logging.Cache("refreshed %d events", len(list))
	return nil
}

// LoadList returns the cached rows, newest start date first.
func (c *EventCache) LoadList() ([]eventsapi.Summary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.Query(`SELECT id, name, sport, format, status,
		start_date, athletes, event_code, location
		FROM events ORDER BY start_date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("reading cached events: %w", err)
	}
	defer rows.Close()

	var list []eventsapi.Summary
	for rows.Next() {
		var s eventsapi.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Sport, &s.Format, &s.Status,
			&s.StartDate, &s.ParticipantCount, &s.EventCode, &s.Location); err != nil {
			return nil, fmt.Errorf("scanning cached event: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Close closes the underlying database.
func (c *EventCache) Close() error {
	return c.db.Close()
}
