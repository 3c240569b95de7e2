package db

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedDev fills an empty dev database with a sample visit and a starter
// supplier catalog so the API has something to show on first run. It never
// touches a database that already has data.
func SeedDev(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM service_records;").Scan(&n); err != nil {
		return fmt.Errorf("seed count records: %w", err)
	}
	if n == 0 {
		if _, err := db.ExecContext(ctx, `
INSERT INTO service_records(
  store, supplier, technician, service_date, service_time, recurrence, next_due, notes
) VALUES (
  '4g Comércio de Alimentos e Bebidas Ltda', 'Clima Rio Refrigeração', 'Marcos',
  '15/01/2024', '09:00', '3 months', '15/04/2024', 'limpeza das câmaras frias'
);`); err != nil {
			return fmt.Errorf("seed sample record: %w", err)
		}
	}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM suppliers;").Scan(&n); err != nil {
		return fmt.Errorf("seed count suppliers: %w", err)
	}
	if n == 0 {
		for i, name := range []string{"Clima Rio Refrigeração", "Dedetizadora Carioca"} {
			if _, err := db.ExecContext(ctx,
				"INSERT INTO suppliers(position, name) VALUES(?, ?);", i+1, name,
			); err != nil {
				return fmt.Errorf("seed supplier %s: %w", name, err)
			}
		}
	}

	return nil
}
