// Package journal keeps an append-only SQLite log of tool invocations.
// It is audit trail only: nothing in the request path ever reads it, so
// the per-call statelessness of the buffer operations is preserved.
package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("invocation not found")

// Invocation is one recorded tool call.
type Invocation struct {
	ID       string
	Tool     string
	Args     string // argument JSON as received
	OK       bool
	Error    string
	Duration time.Duration
	Started  int64 // unix seconds
}

type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	if _, err := db.Exec(`
        PRAGMA foreign_keys = ON;
        PRAGMA journal_mode = WAL;
    `); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set PRAGMA: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &DB{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS invocations (
            id          TEXT PRIMARY KEY,
            tool        TEXT NOT NULL,
            args        TEXT NOT NULL DEFAULT '',
            ok          INTEGER NOT NULL,
            error       TEXT NOT NULL DEFAULT '',
            duration_ms INTEGER NOT NULL,
            started     INTEGER NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_invocations_started
            ON invocations(started);
    `)
	return err
}

// Record appends an invocation, assigning an id when the caller left it
// empty, and returns the id.
func (d *DB) Record(inv Invocation) (string, error) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Started == 0 {
		inv.Started = time.Now().Unix()
	}

	_, err := d.db.Exec(`
        INSERT INTO invocations (id, tool, args, ok, error, duration_ms, started)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, inv.ID, inv.Tool, inv.Args, inv.OK, inv.Error, inv.Duration.Milliseconds(), inv.Started)
	if err != nil {
		return "", fmt.Errorf("failed to record invocation: %w", err)
	}
	return inv.ID, nil
}

// Get returns a single invocation by id.
func (d *DB) Get(id string) (*Invocation, error) {
	var inv Invocation
	var durationMS int64
	err := d.db.QueryRow(`
        SELECT id, tool, args, ok, error, duration_ms, started
        FROM invocations WHERE id = ?
    `, id).Scan(&inv.ID, &inv.Tool, &inv.Args, &inv.OK, &inv.Error, &durationMS, &inv.Started)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query invocation: %w", err)
	}
	inv.Duration = time.Duration(durationMS) * time.Millisecond
	return &inv, nil
}

// Recent returns up to n invocations, newest first.
func (d *DB) Recent(n int) ([]Invocation, error) {
	rows, err := d.db.Query(`
        SELECT id, tool, args, ok, error, duration_ms, started
        FROM invocations
        ORDER BY started DESC, rowid DESC
        LIMIT ?
    `, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query invocations: %w", err)
	}
	defer rows.Close()

	var invs []Invocation
	for rows.Next() {
		var inv Invocation
		var durationMS int64
		if err := rows.Scan(&inv.ID, &inv.Tool, &inv.Args, &inv.OK, &inv.Error, &durationMS, &inv.Started); err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}
		inv.Duration = time.Duration(durationMS) * time.Millisecond
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invocations: %w", err)
	}
	return invs, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}
