package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tenrocafes/agenda/internal/agenda/types"
	dbpkg "github.com/tenrocafes/agenda/internal/db"
)

type RecordStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewRecordStore(db *sql.DB, writer *dbpkg.Worker) *RecordStore {
	return &RecordStore{db: db, writer: writer}
}

func (s *RecordStore) LoadAll(ctx context.Context) ([]types.ServiceRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT store, supplier, technician, service_date, service_time, recurrence, next_due, notes
FROM service_records
ORDER BY position;
`)
	if err != nil {
		return nil, fmt.Errorf("LoadAll query: %w", err)
	}
	defer rows.Close()

	var records []types.ServiceRecord
	for rows.Next() {
		var r types.ServiceRecord
		if err := rows.Scan(
			&r.Store, &r.Supplier, &r.Technician,
			&r.ServiceDate, &r.ServiceTime, &r.Recurrence, &r.NextDue, &r.Notes,
		); err != nil {
			return nil, fmt.Errorf("LoadAll scan: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("LoadAll rows: %w", err)
	}
	return records, nil
}

// SaveAll replaces the whole collection in one transaction. Position
// preserves the caller's ordering, which is also the record's public index.
func (s *RecordStore) SaveAll(ctx context.Context, records []types.ServiceRecord) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM service_records;"); err != nil {
			return fmt.Errorf("SaveAll clear: %w", err)
		}
		for i, r := range records {
			if _, err := tx.ExecContext(ctx, `
INSERT INTO service_records(
  position, store, supplier, technician, service_date, service_time, recurrence, next_due, notes
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
				i+1, r.Store, r.Supplier, r.Technician,
				r.ServiceDate, r.ServiceTime, r.Recurrence, r.NextDue, r.Notes,
			); err != nil {
				return fmt.Errorf("SaveAll insert %d: %w", i, err)
			}
		}
		return nil
	})
}
