package store

import (
	"fmt"
	"strings"

	"github.com/aroods/finly"
)

// SymbolMapping is one operator-maintained (asset, provider) -> symbol
// entry. Lower priority sorts first.
type SymbolMapping struct {
	ID       int64
	Asset    string
	Provider string
	Symbol   string
	Priority int
	Active   bool
}

// Mappings returns the active provider symbols for an asset, by priority
// then insertion order. It implements finly.MappingSource.
func (s *Store) Mappings(asset, provider string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT symbol FROM symbol_mappings
		WHERE asset = ? AND provider = ? AND active = 1
		ORDER BY priority, id`,
		finly.NormalizeSymbol(asset), strings.ToLower(strings.TrimSpace(provider)),
	)
	if err != nil {
		return nil, fmt.Errorf("reading symbol mappings: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}
	return symbols, rows.Err()
}

// AllMappings returns every mapping row for administration.
func (s *Store) AllMappings() ([]SymbolMapping, error) {
	rows, err := s.db.Query(`
		SELECT id, asset, provider, symbol, priority, active
		FROM symbol_mappings
		ORDER BY asset, provider, priority, id`)
	if err != nil {
		return nil, fmt.Errorf("listing symbol mappings: %w", err)
	}
	defer rows.Close()

	var mappings []SymbolMapping
	for rows.Next() {
		var (
			m      SymbolMapping
			active int
		)
		if err := rows.Scan(&m.ID, &m.Asset, &m.Provider, &m.Symbol, &m.Priority, &active); err != nil {
			return nil, err
		}
		m.Active = active != 0
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

// AddMapping inserts or reactivates a mapping.
func (s *Store) AddMapping(m SymbolMapping) error {
	_, err := s.db.Exec(`
		INSERT INTO symbol_mappings (asset, provider, symbol, priority, active)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(asset, provider, symbol) DO UPDATE SET
			priority = excluded.priority,
			active   = 1`,
		finly.NormalizeSymbol(m.Asset), strings.ToLower(strings.TrimSpace(m.Provider)),
		strings.TrimSpace(m.Symbol), m.Priority,
	)
	if err != nil {
		return fmt.Errorf("inserting symbol mapping: %w", err)
	}
	return nil
}

var _ finly.MappingSource = (*Store)(nil)
