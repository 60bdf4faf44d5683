package store

import (
	"fmt"
	"time"

	"github.com/aroods/finly"
)

const cashTimeFormat = time.RFC3339

// CashDeposits returns the cash history in (created_at, id) order.
func (s *Store) CashDeposits() ([]finly.CashDeposit, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, amount, delta, note
		FROM cash_deposits
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing cash deposits: %w", err)
	}
	defer rows.Close()

	var deposits []finly.CashDeposit
	for rows.Next() {
		var (
			d       finly.CashDeposit
			created string
		)
		if err := rows.Scan(&d.ID, &created, &d.Amount, &d.Delta, &d.Note); err != nil {
			return nil, fmt.Errorf("scanning cash deposit: %w", err)
		}
		if t, err := time.Parse(cashTimeFormat, created); err == nil {
			d.CreatedAt = t
		}
		deposits = append(deposits, d)
	}
	return deposits, rows.Err()
}

// AddCashDeposit records a new absolute cash balance and rewrites every
// delta so the history stays consistent.
func (s *Store) AddCashDeposit(amount float64, note string, at time.Time) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO cash_deposits (created_at, amount, note)
		VALUES (?, ?, ?)`,
		at.UTC().Format(cashTimeFormat), amount, note,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting cash deposit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, s.recomputeCashDeltas()
}

// DeleteCashDeposit removes an entry and rewrites the remaining deltas.
func (s *Store) DeleteCashDeposit(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM cash_deposits WHERE id = ?`, id); err != nil {
		return err
	}
	return s.recomputeCashDeltas()
}

func (s *Store) recomputeCashDeltas() error {
	deposits, err := s.CashDeposits()
	if err != nil {
		return err
	}
	finly.RecomputeCashDeltas(deposits)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, d := range deposits {
		if _, err := tx.Exec(`UPDATE cash_deposits SET delta = ? WHERE id = ?`, d.Delta, d.ID); err != nil {
			tx.Rollback()
			return fmt.Errorf("rewriting delta for deposit %d: %w", d.ID, err)
		}
	}
	return tx.Commit()
}
