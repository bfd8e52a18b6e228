package warehouses

import (
	"database/sql"
	"fmt"

	"github.com/ngmaloney/warehouse-map/internal/models"
	"go.uber.org/zap"
)

// Save replaces the cached warehouses with ws. Rows repeating an earlier
// (company, address) pair are ignored.
func Save(db *sql.DB, ws []models.Warehouse) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() // Rollback on error

	if _, err := tx.Exec("DELETE FROM warehouses"); err != nil {
		return 0, fmt.Errorf("clearing warehouses: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO warehouses (company, address, state, source, type, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for _, w := range ws {
		res, err := stmt.Exec(w.Company, w.Address, w.State, w.Source, w.Type, w.Latitude, w.Longitude)
		if err != nil {
			zap.L().Warn("inserting warehouse", zap.String("company", w.Company), zap.Error(err))
			continue
		}
		if n, _ := res.RowsAffected(); n > 0 {
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}

// ReadAll returns the cached warehouses in feed order
func ReadAll(db *sql.DB) ([]models.Warehouse, error) {
	rows, err := db.Query(`
		SELECT company, address, state, source, type, latitude, longitude
		FROM warehouses
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying warehouses: %w", err)
	}
	defer rows.Close()

	var out []models.Warehouse
	for rows.Next() {
		var w models.Warehouse
		var state, source, typ sql.NullString
		if err := rows.Scan(&w.Company, &w.Address, &state, &source, &typ, &w.Latitude, &w.Longitude); err != nil {
			return nil, fmt.Errorf("scanning warehouse: %w", err)
		}
		w.State, w.Source, w.Type = state.String, source.String, typ.String
		out = append(out, w)
	}
	return out, rows.Err()
}
