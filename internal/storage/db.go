package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"pacesetter/internal"
)

type DB struct {
	conn *sql.DB
}

// Session is the subset of working state that survives a reload within
// the same working session. Raw rows, records, KPIs and snapshots do not.
type Session struct {
	StepIndex     int                           `json:"stepIndex"`
	Grid          internal.GridFactor           `json:"gridFactor"`
	LifetimeYears map[internal.Category]float64 `json:"lifetimeYears"`
	Thresholds    internal.Thresholds           `json:"thresholds"`
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS session (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS parse_runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  fileName TEXT NOT NULL,
  status TEXT NOT NULL,
  sheets INTEGER NOT NULL,
  rows INTEGER NOT NULL,
  message TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := d.conn.Exec(schema)
	return err
}

const sessionKey = "session"

func (d *DB) SaveSession(s Session) error {
	blob, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(`
INSERT INTO session (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, sessionKey, string(blob))
	return err
}

// LoadSession returns nil when no session has been saved yet.
func (d *DB) LoadSession() (*Session, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM session WHERE key = ?`, sessionKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (d *DB) InsertParseRun(traceID, fileName, status string, sheets, rows int, message string) error {
	_, err := d.conn.Exec(`
INSERT INTO parse_runs (traceId, fileName, status, sheets, rows, message)
VALUES (?, ?, ?, ?, ?, ?)
`, traceID, fileName, status, sheets, rows, message)
	return err
}
