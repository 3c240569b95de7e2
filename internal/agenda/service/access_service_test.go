package service_test

import (
	"testing"

	"github.com/tenrocafes/agenda/internal/agenda/service"
	"github.com/tenrocafes/agenda/internal/agenda/types"
)

func newTestAccess() *service.AccessService {
	return service.NewAccessService(service.AccessConfig{
		AdminPIN: "9999",
		StorePINs: map[string]string{
			"Loja A": "1111",
			"Loja B": "2222",
		},
	})
}

func TestResolve_AdminWinsEvenWithStore(t *testing.T) {
	svc := newTestAccess()

	mode := svc.Resolve("Loja A", "9999")
	if mode.Level != types.AccessAdmin {
		t.Errorf("expected admin, got %v", mode.Level)
	}
	if mode.Store != "" {
		t.Errorf("admin mode must not carry a store, got %q", mode.Store)
	}
}

func TestResolve_StoreScoped(t *testing.T) {
	svc := newTestAccess()

	mode := svc.Resolve("Loja A", "1111")
	if mode.Level != types.AccessStoreScoped {
		t.Fatalf("expected store-scoped, got %v", mode.Level)
	}
	if mode.Store != "Loja A" {
		t.Errorf("expected scope Loja A, got %q", mode.Store)
	}
}

func TestResolve_WrongPinDenied(t *testing.T) {
	svc := newTestAccess()

	cases := []struct{ store, pin string }{
		{"Loja A", "2222"}, // another store's PIN
		{"Loja A", "0000"},
		{"Loja A", ""},
		{"Loja C", "1111"}, // store outside the tenant set
	}
	for _, c := range cases {
		if mode := svc.Resolve(c.store, c.pin); mode.Level != types.AccessDenied {
			t.Errorf("Resolve(%q, %q) = %v, want denied", c.store, c.pin, mode.Level)
		}
	}
}

func TestResolve_NoStoreIsOpen(t *testing.T) {
	svc := newTestAccess()

	if mode := svc.Resolve("", ""); mode.Level != types.AccessOpen {
		t.Errorf("expected open, got %v", mode.Level)
	}
	// A PIN without a store is still open unless it is the admin PIN.
	if mode := svc.Resolve("", "1111"); mode.Level != types.AccessOpen {
		t.Errorf("expected open for store-less non-admin PIN, got %v", mode.Level)
	}
}

func TestResolve_EmptyAdminPinNeverMatches(t *testing.T) {
	svc := service.NewAccessService(service.AccessConfig{
		StorePINs: map[string]string{"Loja A": "1111"},
	})

	if mode := svc.Resolve("", ""); mode.Level != types.AccessOpen {
		t.Errorf("empty PIN must not resolve as admin, got %v", mode.Level)
	}
}
