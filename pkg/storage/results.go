// Package storage persists benchmark measurements so runs can be
// compared across invocations.
package storage

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"sortbench/pkg/bench"
)

// ResultStore is a SQLite-backed store of benchmark measurements.
type ResultStore struct {
	db *sql.DB
	mu sync.Mutex
}

func OpenResultStore(path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS measurements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_at INTEGER NOT NULL,
		strategy TEXT NOT NULL,
		dataset TEXT NOT NULL,
		lookups INTEGER NOT NULL,
		total_ns INTEGER NOT NULL,
		avg_ns REAL NOT NULL,
		failures INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: init schema: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
	`); err != nil {
		log.Printf("Warning: failed to set PRAGMA: %v", err)
	}

	return &ResultStore{db: db}, nil
}

func (s *ResultStore) Append(m bench.Measurement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO measurements (run_at, strategy, dataset, lookups, total_ns, avg_ns, failures) VALUES (?, ?, ?, ?, ?, ?, ?)",
		m.RunAt.UnixNano(), m.Strategy, m.Dataset, m.Lookups, int64(m.TotalNs), m.AvgNs, m.Failures,
	)
	return err
}

// AppendBatch inserts all measurements in a single transaction.
func (s *ResultStore) AppendBatch(ms []bench.Measurement) error {
	if len(ms) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		"INSERT INTO measurements (run_at, strategy, dataset, lookups, total_ns, avg_ns, failures) VALUES (?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, m := range ms {
		if _, err := stmt.Exec(m.RunAt.UnixNano(), m.Strategy, m.Dataset, m.Lookups, int64(m.TotalNs), m.AvgNs, m.Failures); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// LoadAll returns every stored measurement, oldest first.
func (s *ResultStore) LoadAll() ([]bench.Measurement, error) {
	rows, err := s.db.Query(
		"SELECT run_at, strategy, dataset, lookups, total_ns, avg_ns, failures FROM measurements ORDER BY run_at ASC, id ASC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ms []bench.Measurement
	for rows.Next() {
		var m bench.Measurement
		var runAt, totalNs int64
		if err := rows.Scan(&runAt, &m.Strategy, &m.Dataset, &m.Lookups, &totalNs, &m.AvgNs, &m.Failures); err != nil {
			return nil, err
		}
		m.RunAt = time.Unix(0, runAt)
		m.TotalNs = uint64(totalNs)
		ms = append(ms, m)
	}
	return ms, rows.Err()
}

func (s *ResultStore) Truncate() error {
	_, err := s.db.Exec("DELETE FROM measurements")
	return err
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}
