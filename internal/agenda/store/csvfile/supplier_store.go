package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// SupplierStore persists the catalog as one name per row, no header,
// matching the legacy fornecedores file.
type SupplierStore struct {
	path string
}

func NewSupplierStore(path string) *SupplierStore {
	return &SupplierStore{path: path}
}

func (s *SupplierStore) LoadSuppliers(_ context.Context) ([]string, error) {
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

	var names []string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.path, err)
		}
		if len(row) == 0 {
			continue
		}
		if name := strings.TrimSpace(row[0]); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *SupplierStore) SaveSuppliers(_ context.Context, names []string) error {
	rows := make([][]string, 0, len(names))
	for _, n := range names {
		rows = append(rows, []string{strings.TrimSpace(n)})
	}
	return writeCSV(s.path, rows)
}
