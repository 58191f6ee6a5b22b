// Package history persists trial records to a DuckDB database, the
// embedded-analytics-store trial-history backend spec.md's trial
// recording (SetRecordRate, SetTraceTrial) implies (SPEC_FULL.md §17).
// Pattern grounded on the teacher's DuckDB cache loader
// (internal/cache/duckdb.go): open via database/sql, create the schema if
// absent, use plain parameterized queries.
package history

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
)

// Store persists and queries trial records in a DuckDB file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) a DuckDB file at path and ensures the
// trials table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("history: open duckdb: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS trials (
			run_uuid   VARCHAR NOT NULL,
			step       INTEGER NOT NULL,
			score      DOUBLE NOT NULL,
			kept       BOOLEAN NOT NULL,
			mod_count  INTEGER NOT NULL,
			PRIMARY KEY (run_uuid, step)
		)
	`)
	if err != nil {
		return fmt.Errorf("history: migrate: %w", err)
	}
	return nil
}

// Record is one persisted trial outcome.
type Record struct {
	RunUUID  string
	Step     int
	Score    float64
	Kept     bool
	ModCount int
}

// Insert persists r, replacing any prior record at the same (RunUUID,
// Step) key.
func (s *Store) Insert(r Record) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO trials (run_uuid, step, score, kept, mod_count) VALUES (?, ?, ?, ?, ?)`,
		r.RunUUID, r.Step, r.Score, r.Kept, r.ModCount,
	)
	if err != nil {
		return fmt.Errorf("history: insert trial: %w", err)
	}
	return nil
}

// ForRun returns every recorded trial for runUUID, ordered by step.
func (s *Store) ForRun(runUUID string) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT run_uuid, step, score, kept, mod_count FROM trials WHERE run_uuid = ? ORDER BY step`,
		runUUID,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query trials: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.RunUUID, &r.Step, &r.Score, &r.Kept, &r.ModCount); err != nil {
			return nil, fmt.Errorf("history: scan trial: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
