// Package history persists cycle and export records in SQLite so operators
// can inspect sync behavior across restarts. Recording is strictly
// best-effort: a write failure is logged and the cycle goes on.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cycles (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at  TIMESTAMP NOT NULL,
    finished_at TIMESTAMP NOT NULL,
    items       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS exports (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    exported_at TIMESTAMP NOT NULL,
    path        TEXT NOT NULL,
    items       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cycles_started ON cycles(started_at);
CREATE INDEX IF NOT EXISTS idx_exports_at ON exports(exported_at);
`

// CycleRecord is one completed sync cycle.
type CycleRecord struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Items      int       `json:"items"`
}

// ExportRecord is one archive export.
type ExportRecord struct {
	ExportedAt time.Time `json:"exported_at"`
	Path       string    `json:"path"`
	Items      int       `json:"items"`
}

// Store wraps the SQLite database.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates the Store and initializes the schema.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordCycle stores one completed cycle. Failures are logged, never
// propagated.
func (s *Store) RecordCycle(ctx context.Context, started, finished time.Time, items int) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cycles (started_at, finished_at, items) VALUES (?, ?, ?)`,
		started, finished, items)
	if err != nil {
		s.logger.Warn("record cycle failed", zap.Error(err))
	}
}

// RecordExport stores one archive export. Failures are logged, never
// propagated.
func (s *Store) RecordExport(ctx context.Context, at time.Time, path string, items int) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (exported_at, path, items) VALUES (?, ?, ?)`,
		at, path, items)
	if err != nil {
		s.logger.Warn("record export failed", zap.Error(err))
	}
}

// RecentCycles returns up to limit cycles, newest first.
func (s *Store) RecentCycles(ctx context.Context, limit int) ([]CycleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT started_at, finished_at, items FROM cycles ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query cycles: %w", err)
	}
	defer rows.Close()

	var out []CycleRecord
	for rows.Next() {
		var rec CycleRecord
		if err := rows.Scan(&rec.StartedAt, &rec.FinishedAt, &rec.Items); err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cycles: %w", err)
	}
	return out, nil
}

// RecentExports returns up to limit exports, newest first.
func (s *Store) RecentExports(ctx context.Context, limit int) ([]ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT exported_at, path, items FROM exports ORDER BY exported_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	var out []ExportRecord
	for rows.Next() {
		var rec ExportRecord
		if err := rows.Scan(&rec.ExportedAt, &rec.Path, &rec.Items); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exports: %w", err)
	}
	return out, nil
}
