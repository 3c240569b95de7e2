package service_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tenrocafes/agenda/internal/agenda/service"
	"github.com/tenrocafes/agenda/internal/agenda/store/memory"
	"github.com/tenrocafes/agenda/internal/agenda/types"
)

func TestScan_PersistsBackfilledNextDue(t *testing.T) {
	recordStore := memory.NewRecordStore([]types.ServiceRecord{
		{Store: "Loja A", ServiceDate: "2024-01-31", ServiceTime: "930", Recurrence: "1 month"},
		{Store: "Loja B", ServiceDate: "junk", Recurrence: "1 month"},
	})
	scanner := service.NewDueScanner(recordStore, service.ScannerConfig{LookaheadDays: 7}, zerolog.Nop())

	if err := scanner.Scan(context.Background()); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	stored, _ := recordStore.LoadAll(context.Background())
	if stored[0].NextDue != "29/02/2024" {
		t.Errorf("expected persisted backfill 29/02/2024, got %q", stored[0].NextDue)
	}
	if stored[0].ServiceDate != "31/01/2024" || stored[0].ServiceTime != "09:30" {
		t.Errorf("expected canonicalized fields, got %+v", stored[0])
	}
	// Unparseable rows stay blank, not an error.
	if stored[1].NextDue != "" {
		t.Errorf("expected junk row to stay blank, got %q", stored[1].NextDue)
	}
}

func TestScan_NoChangesNoSave(t *testing.T) {
	seed := []types.ServiceRecord{
		{Store: "Loja A", ServiceDate: "31/01/2024", ServiceTime: "09:30", Recurrence: "1 month", NextDue: "29/02/2024"},
	}
	recordStore := memory.NewRecordStore(seed)
	scanner := service.NewDueScanner(recordStore, service.ScannerConfig{LookaheadDays: 7}, zerolog.Nop())

	if err := scanner.Scan(context.Background()); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	stored, _ := recordStore.LoadAll(context.Background())
	if len(stored) != 1 || stored[0] != seed[0] {
		t.Errorf("collection changed on a no-op scan: %+v", stored)
	}
}

func TestStartStop_DisabledScanner(t *testing.T) {
	scanner := service.NewDueScanner(memory.NewRecordStore(nil), service.ScannerConfig{}, zerolog.Nop())

	scanner.Start(context.Background())
	scanner.Stop() // must not hang when lookahead=0
}

func TestStop_WithoutStart(t *testing.T) {
	scanner := service.NewDueScanner(memory.NewRecordStore(nil), service.ScannerConfig{LookaheadDays: 7}, zerolog.Nop())

	scanner.Stop() // must not hang when Start was never called
}
