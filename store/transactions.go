package store

import (
	"fmt"

	"github.com/aroods/finly"
	"github.com/aroods/finly/date"
)

// dateStr stores the zero date as an empty string, not as a bogus day.
func dateStr(d date.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// Transactions returns the whole transaction log in (date, id) order.
func (s *Store) Transactions() ([]finly.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT id, date, asset, category, side, quantity, price, currency
		FROM transactions
		ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []finly.Transaction
	for rows.Next() {
		var (
			tx   finly.Transaction
			day  string
			side string
		)
		if err := rows.Scan(&tx.ID, &day, &tx.Asset, &tx.Category, &side, &tx.Quantity, &tx.Price, &tx.Currency); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		tx.Date = scanDate(day)
		parsed, err := finly.ParseSide(side)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", tx.ID, err)
		}
		tx.Side = parsed
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// AddTransaction appends a transaction to the log and returns its id.
func (s *Store) AddTransaction(tx finly.Transaction) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO transactions (date, asset, category, side, quantity, price, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		dateStr(tx.Date), finly.NormalizeSymbol(tx.Asset), tx.Category,
		string(tx.Side), tx.Quantity, tx.Price, finly.NormalizeSymbol(tx.Currency),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	return res.LastInsertId()
}

// DeleteTransaction removes a transaction by id.
func (s *Store) DeleteTransaction(id int64) error {
	_, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	return err
}
