// Package audit keeps a trail of user actions in a local SQLite
// database, separate from the delimited data files.
package audit

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// Action constants.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionLogin  = "LOGIN"
	ActionExport = "EXPORT"
)

// Entry is one audit record, newest first from Recent.
type Entry struct {
	ID        int
	Username  string
	Action    string
	Entity    string
	RecordID  int
	Details   string
	CreatedAt string
}

// Logger writes and reads the audit trail.
type Logger struct {
	db *sql.DB
}

// Open opens (or creates) the audit database at path. Use ":memory:"
// for tests.
func Open(path string) (*Logger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	ddl := `CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		action TEXT NOT NULL,
		entity TEXT NOT NULL,
		record_id INTEGER DEFAULT 0,
		details TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit migration: %w", err)
	}
	return &Logger{db: db}, nil
}

// Close closes the underlying database.
func (l *Logger) Close() error { return l.db.Close() }

// Log records one action. Audit failures are logged and swallowed; the
// trail never blocks the operation it describes.
func (l *Logger) Log(username, action, entity string, recordID int, details string) {
	_, err := l.db.Exec(
		"INSERT INTO audit_log (username, action, entity, record_id, details) VALUES (?, ?, ?, ?, ?)",
		username, action, entity, recordID, details)
	if err != nil {
		log.Printf("audit log error: %v", err)
	}
}

// Recent returns up to limit entries, newest first.
func (l *Logger) Recent(limit int) ([]Entry, error) {
	rows, err := l.db.Query(
		"SELECT id, username, action, entity, record_id, details, created_at FROM audit_log ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Username, &e.Action, &e.Entity, &e.RecordID, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
