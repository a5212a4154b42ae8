// Package storage keeps the local run ledger: one row per ingested URL, one
// per promotion attempt, and a small key/value metadata table.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"powerrank/internal"
)

const MetaLastPromotion = "dataset.last_promotion"

type DB struct {
	conn *sql.DB
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
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  url TEXT NOT NULL,
  source TEXT,
  parsed INTEGER NOT NULL DEFAULT 0,
  dropped INTEGER NOT NULL DEFAULT 0,
  appended INTEGER NOT NULL DEFAULT 0,
  outcome TEXT NOT NULL,
  error TEXT,
  timingsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_traceId ON runs(traceId);

CREATE TABLE IF NOT EXISTS promotions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  candidate TEXT NOT NULL,
  latest TEXT NOT NULL,
  rowsBefore INTEGER NOT NULL,
  rowsAfter INTEGER NOT NULL,
  outcome TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertRun(run internal.RunRow, timings map[string]float64) error {
	timingsJSON, _ := json.Marshal(timings)
	_, err := d.conn.Exec(`
INSERT INTO runs (traceId, url, source, parsed, dropped, appended, outcome, error, timingsJson)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, run.TraceID, run.URL, nullString(run.Source), run.Parsed, run.Dropped, run.Appended, run.Outcome, nullString(run.Error), string(timingsJSON))
	return err
}

// ListRuns returns the most recent runs first.
func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(`
SELECT id, traceId, url, source, parsed, dropped, appended, outcome, error, createdAt
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]internal.RunRow, 0)
	for rows.Next() {
		var r internal.RunRow
		var source, runErr sql.NullString
		if err := rows.Scan(&r.ID, &r.TraceID, &r.URL, &source, &r.Parsed, &r.Dropped, &r.Appended, &r.Outcome, &runErr, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Source = source.String
		r.Error = runErr.String
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) InsertPromotion(candidate, latest string, rowsBefore, rowsAfter int, outcome internal.MergeOutcome) error {
	_, err := d.conn.Exec(`
INSERT INTO promotions (candidate, latest, rowsBefore, rowsAfter, outcome) VALUES (?, ?, ?, ?, ?)
`, candidate, latest, rowsBefore, rowsAfter, string(outcome))
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
