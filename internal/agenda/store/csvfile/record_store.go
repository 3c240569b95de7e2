// Package csvfile implements the stores over the legacy flat-file layout.
// Every save rewrites the full file through a temp file and rename so a
// crash mid-write never leaves a truncated collection behind.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tenrocafes/agenda/internal/agenda/types"
)

var recordColumns = []string{
	"store", "supplier", "technician",
	"service_date", "service_time", "recurrence", "next_due", "notes",
}

type RecordStore struct {
	path string
}

func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// LoadAll reads the whole collection. A missing file is an empty
// collection, not an error. Columns are matched by header name so older
// files with a different column order still load.
func (s *RecordStore) LoadAll(_ context.Context) ([]types.ServiceRecord, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", s.path, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []types.ServiceRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %s: %w", s.path, err)
		}
		records = append(records, types.ServiceRecord{
			Store:       field(row, "store"),
			Supplier:    field(row, "supplier"),
			Technician:  field(row, "technician"),
			ServiceDate: field(row, "service_date"),
			ServiceTime: field(row, "service_time"),
			Recurrence:  field(row, "recurrence"),
			NextDue:     field(row, "next_due"),
			Notes:       field(row, "notes"),
		})
	}
	return records, nil
}

// SaveAll replaces the file with the given collection.
func (s *RecordStore) SaveAll(_ context.Context, records []types.ServiceRecord) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, recordColumns)
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Store, rec.Supplier, rec.Technician,
			rec.ServiceDate, rec.ServiceTime, rec.Recurrence, rec.NextDue, rec.Notes,
		})
	}
	return writeCSV(s.path, rows)
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
