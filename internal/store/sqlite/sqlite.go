// Package sqlite persists cuttle session envelopes to a SQLite database,
// the way pkg/server/internal/db persists poker table state: scalar columns
// alongside a JSON blob for the composite snapshot. Only id, the primary
// key, is indexed.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Row is the persisted form of one session envelope.
type Row struct {
	ID           string
	StateVersion int64
	Status       string
	Turn         int
	Phase        string
	Snapshot     json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DB wraps a SQLite connection holding the sessions table.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the sessions database at path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := createTables(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &DB{conn}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			state_version INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'InProgress',
			turn INTEGER NOT NULL DEFAULT 0,
			phase TEXT NOT NULL DEFAULT 'Base',
			snapshot TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// SaveSession upserts a session row.
func (db *DB) SaveSession(r *Row) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO sessions (
			id, state_version, status, turn, phase, snapshot, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.StateVersion, r.Status, r.Turn, r.Phase, string(r.Snapshot), r.CreatedAt, time.Now(),
	)
	return err
}

// LoadSession loads one session row by id.
func (db *DB) LoadSession(id string) (*Row, error) {
	var r Row
	var snapshot string
	err := db.QueryRow(`
		SELECT id, state_version, status, turn, phase, snapshot, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id).Scan(&r.ID, &r.StateVersion, &r.Status, &r.Turn, &r.Phase, &snapshot, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	r.Snapshot = json.RawMessage(snapshot)
	return &r, nil
}

// LoadAllSessionIDs returns every persisted session id, for warm restart.
func (db *DB) LoadAllSessionIDs() ([]string, error) {
	rows, err := db.Query(`SELECT id FROM sessions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteSession removes a session row.
func (db *DB) DeleteSession(id string) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
