package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	dbpkg "github.com/tenrocafes/agenda/internal/db"
)

type SupplierStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewSupplierStore(db *sql.DB, writer *dbpkg.Worker) *SupplierStore {
	return &SupplierStore{db: db, writer: writer}
}

func (s *SupplierStore) LoadSuppliers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM suppliers ORDER BY position;")
	if err != nil {
		return nil, fmt.Errorf("LoadSuppliers query: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("LoadSuppliers scan: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("LoadSuppliers rows: %w", err)
	}
	return names, nil
}

func (s *SupplierStore) SaveSuppliers(ctx context.Context, names []string) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM suppliers;"); err != nil {
			return fmt.Errorf("SaveSuppliers clear: %w", err)
		}
		for i, n := range names {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO suppliers(position, name) VALUES(?, ?);", i+1, n,
			); err != nil {
				return fmt.Errorf("SaveSuppliers insert %d: %w", i, err)
			}
		}
		return nil
	})
}
