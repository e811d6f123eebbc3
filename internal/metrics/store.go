package metrics

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

const (
	incrementCounterSQL = `
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;`
	listCountersSQL = `SELECT key, value FROM metrics ORDER BY key`
)

// store persists league counters (matches logged, quest runs, resolved quests)
// in the metrics table.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New returns a MetricsStore backed by db.
func New(db *sql.DB) MetricsStore {
	return &store{db: db}
}

// Increment bumps key by one. Counter writes never fail the caller; errors
// are logged and dropped.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(incrementCounterSQL, key); err != nil {
		log.Error("Failed to increment counter", "key", key, "error", err)
		return
	}
	log.Debug("Incremented counter", "key", key)
}

func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(listCountersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var (
			key   string
			value int
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		counters[key] = value
	}
	return counters, rows.Err()
}
