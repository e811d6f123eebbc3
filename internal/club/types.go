package club

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrNotFound is returned when a single looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
