// Package store persists the portfolio state in a single SQLite file:
// the transaction log, bond lots, dividend records, cash history, symbol
// mappings and the market-data cache. Everything derived (valuations,
// profit curves, accruals) is recomputed from these tables on demand.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aroods/finly/date"
)

// Store is a handle on the portfolio database. The embedded *sql.DB
// serializes concurrent access; Store methods add no locking of their own.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// scanDate parses a stored date string leniently: blanks and garbage scan
// as the zero date instead of failing the whole row.
func scanDate(s string) date.Date {
	d, err := date.Parse(s)
	if err != nil {
		return date.Date{}
	}
	return d
}
