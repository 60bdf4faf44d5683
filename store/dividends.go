package store

import (
	"fmt"

	"github.com/aroods/finly"
)

// Dividends returns every dividend record, newest ex-date first.
func (s *Store) Dividends() ([]finly.DividendRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, asset, ex_date, pay_date, amount, currency, shares,
		       gross, net, source, status, notes
		FROM dividends
		ORDER BY ex_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing dividends: %w", err)
	}
	defer rows.Close()

	var records []finly.DividendRecord
	for rows.Next() {
		var (
			rec            finly.DividendRecord
			exDate, payday string
			status         string
		)
		if err := rows.Scan(&rec.ID, &rec.Asset, &exDate, &payday, &rec.Amount,
			&rec.Currency, &rec.Shares, &rec.Gross, &rec.Net,
			&rec.Source, &status, &rec.Notes); err != nil {
			return nil, fmt.Errorf("scanning dividend: %w", err)
		}
		rec.ExDate = scanDate(exDate)
		rec.PayDate = scanDate(payday)
		rec.Status = finly.DividendStatus(status)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpsertDividend inserts or refreshes a record keyed on (asset, ex-date,
// source). A refresh never clobbers a stored share count or note with an
// empty one: manual corrections survive provider syncs.
func (s *Store) UpsertDividend(rec finly.DividendRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO dividends (asset, ex_date, pay_date, amount, currency,
		                       shares, gross, net, source, status, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(asset, ex_date, source) DO UPDATE SET
			pay_date = excluded.pay_date,
			amount   = excluded.amount,
			currency = excluded.currency,
			gross    = excluded.gross,
			net      = excluded.net,
			status   = excluded.status,
			shares   = CASE WHEN excluded.shares > 0 THEN excluded.shares ELSE dividends.shares END,
			notes    = CASE WHEN excluded.notes != '' THEN excluded.notes ELSE dividends.notes END`,
		finly.NormalizeSymbol(rec.Asset), dateStr(rec.ExDate), dateStr(rec.PayDate),
		rec.Amount, rec.Currency, rec.Shares, rec.Gross, rec.Net,
		rec.Source, string(rec.Status), rec.Notes,
	)
	if err != nil {
		return fmt.Errorf("upserting dividend %s/%s: %w", rec.Asset, rec.ExDate, err)
	}
	return nil
}

// UpdateDividendShares applies reconciled share counts in one pass.
func (s *Store) UpdateDividendShares(updates []finly.ShareUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, u := range updates {
		if _, err := tx.Exec(`UPDATE dividends SET shares = ? WHERE id = ?`, u.Shares, u.ID); err != nil {
			tx.Rollback()
			return fmt.Errorf("updating shares for dividend %d: %w", u.ID, err)
		}
	}
	return tx.Commit()
}

// DeleteDividend removes a dividend record by id.
func (s *Store) DeleteDividend(id int64) error {
	_, err := s.db.Exec(`DELETE FROM dividends WHERE id = ?`, id)
	return err
}

var _ finly.DividendSink = (*Store)(nil)
