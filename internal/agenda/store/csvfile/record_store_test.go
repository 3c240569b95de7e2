package csvfile_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tenrocafes/agenda/internal/agenda/store/csvfile"
	"github.com/tenrocafes/agenda/internal/agenda/types"
)

func TestRecordStore_MissingFileIsEmpty(t *testing.T) {
	s := csvfile.NewRecordStore(filepath.Join(t.TempDir(), "servicos.csv"))

	records, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty collection, got %d records", len(records))
	}
}

func TestRecordStore_SaveAllReplaces(t *testing.T) {
	ctx := context.Background()
	s := csvfile.NewRecordStore(filepath.Join(t.TempDir(), "servicos.csv"))

	first := []types.ServiceRecord{
		{Store: "Loja A", Supplier: "Acme Dedetização", ServiceDate: "05/03/2024", ServiceTime: "09:00", Recurrence: "1 month", NextDue: "05/04/2024"},
		{Store: "Loja B", Supplier: "Clima Rio", ServiceDate: "10/03/2024", ServiceTime: "14:30", Recurrence: "15 days", Notes: "filtro trocado"},
	}
	if err := s.SaveAll(ctx, first); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	got, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0] != first[0] || got[1] != first[1] {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, first)
	}

	// A second save replaces, never appends.
	if err := s.SaveAll(ctx, first[:1]); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	got, err = s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 record after replace, got %d", len(got))
	}
}

func TestSupplierStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := csvfile.NewSupplierStore(filepath.Join(t.TempDir(), "fornecedores.csv"))

	names, err := s.LoadSuppliers(ctx)
	if err != nil {
		t.Fatalf("LoadSuppliers: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty catalog, got %v", names)
	}

	want := []string{"Acme Dedetização", "Clima Rio"}
	if err := s.SaveSuppliers(ctx, want); err != nil {
		t.Fatalf("SaveSuppliers: %v", err)
	}
	names, err = s.LoadSuppliers(ctx)
	if err != nil {
		t.Fatalf("LoadSuppliers: %v", err)
	}
	if len(names) != 2 || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("got %v, want %v", names, want)
	}
}
