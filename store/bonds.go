package store

import (
	"fmt"

	"github.com/aroods/finly"
)

// Bonds returns every bond lot, oldest purchase first.
func (s *Store) Bonds() ([]finly.BondLot, error) {
	rows, err := s.db.Query(`
		SELECT id, series, type, purchase_date, maturity_date, quantity,
		       unit_price, face_value, annual_rate, margin, index_rate,
		       capitalization, notes
		FROM bonds
		ORDER BY purchase_date, id`)
	if err != nil {
		return nil, fmt.Errorf("listing bonds: %w", err)
	}
	defer rows.Close()

	var lots []finly.BondLot
	for rows.Next() {
		var (
			lot                finly.BondLot
			typ, purchase, mat string
			capitalization     int
		)
		if err := rows.Scan(&lot.ID, &lot.Series, &typ, &purchase, &mat,
			&lot.Quantity, &lot.UnitPrice, &lot.FaceValue, &lot.AnnualRate,
			&lot.Margin, &lot.IndexRate, &capitalization, &lot.Notes); err != nil {
			return nil, fmt.Errorf("scanning bond: %w", err)
		}
		lot.Type = finly.BondType(typ)
		lot.PurchaseDate = scanDate(purchase)
		lot.MaturityDate = scanDate(mat)
		lot.Capitalization = capitalization != 0
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

// AddBond inserts a bond lot and returns its id.
func (s *Store) AddBond(lot finly.BondLot) (int64, error) {
	capitalization := 0
	if lot.Capitalization {
		capitalization = 1
	}
	res, err := s.db.Exec(`
		INSERT INTO bonds (series, type, purchase_date, maturity_date, quantity,
		                   unit_price, face_value, annual_rate, margin, index_rate,
		                   capitalization, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lot.Series, string(lot.Type), dateStr(lot.PurchaseDate), dateStr(lot.MaturityDate),
		lot.Quantity, lot.UnitPrice, lot.FaceValue, lot.AnnualRate, lot.Margin,
		lot.IndexRate, capitalization, lot.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting bond: %w", err)
	}
	return res.LastInsertId()
}

// DeleteBond removes a bond lot by id.
func (s *Store) DeleteBond(id int64) error {
	_, err := s.db.Exec(`DELETE FROM bonds WHERE id = ?`, id)
	return err
}
