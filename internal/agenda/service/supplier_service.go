package service

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tenrocafes/agenda/internal/agenda/store"
	"github.com/tenrocafes/agenda/internal/agenda/types"
)

// SupplierService manages the shared supplier catalog. Catalog management
// is admin-only; scoped callers only ever read it indirectly through record
// validation.
type SupplierService struct {
	store store.SupplierStore
}

func NewSupplierService(st store.SupplierStore) *SupplierService {
	return &SupplierService{store: st}
}

// NormalizeName title-cases each word of a supplier name, so "acme
// DEDETIZAÇÃO" and "Acme Dedetização" collapse to the same entry.
func NormalizeName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// List returns the catalog for admin management.
func (s *SupplierService) List(ctx context.Context, mode types.AccessMode) ([]string, error) {
	if err := requireAdmin(mode); err != nil {
		return nil, err
	}
	return s.catalog(ctx)
}

// Add appends a new name to the catalog. Adding an already-present name
// (compared case-insensitively) is a no-op, not an error.
func (s *SupplierService) Add(ctx context.Context, mode types.AccessMode, name string) error {
	if err := requireAdmin(mode); err != nil {
		return err
	}
	name = NormalizeName(name)
	if name == "" {
		return nil
	}

	names, err := s.catalog(ctx)
	if err != nil {
		return err
	}
	if containsFold(names, name) {
		return nil
	}
	return s.store.SaveSuppliers(ctx, append(names, name))
}

// Remove deletes the catalog entry at idx.
func (s *SupplierService) Remove(ctx context.Context, mode types.AccessMode, idx int) error {
	if err := requireAdmin(mode); err != nil {
		return err
	}
	names, err := s.catalog(ctx)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(names) {
		return ErrRecordNotFound
	}
	return s.store.SaveSuppliers(ctx, append(names[:idx:idx], names[idx+1:]...))
}

// catalog loads the stored names deduplicated case-insensitively, first
// occurrence wins, order preserved.
func (s *SupplierService) catalog(ctx context.Context) ([]string, error) {
	raw, err := s.store.LoadSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(raw))
	uniq := make([]string, 0, len(raw))
	for _, n := range raw {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, n)
	}
	return uniq, nil
}

// contains reports whether name is already in the catalog.
func (s *SupplierService) contains(ctx context.Context, name string) (bool, error) {
	names, err := s.catalog(ctx)
	if err != nil {
		return false, err
	}
	return containsFold(names, name), nil
}

// ensure appends name to the catalog if absent. Used by the admin
// auto-add path on record creation.
func (s *SupplierService) ensure(ctx context.Context, name string) error {
	names, err := s.catalog(ctx)
	if err != nil {
		return err
	}
	if containsFold(names, name) {
		return nil
	}
	return s.store.SaveSuppliers(ctx, append(names, name))
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func requireAdmin(mode types.AccessMode) error {
	switch mode.Level {
	case types.AccessAdmin:
		return nil
	case types.AccessOpen:
		return ErrUnauthenticated
	default:
		return ErrAccessDenied
	}
}
