package store

import (
	"context"

	"github.com/tenrocafes/agenda/internal/agenda/types"
)

// RecordStore persists the visit collection. Semantics are whole-collection
// replace: callers load everything, mutate the in-memory set, and save
// everything back. Stores never append at the storage layer.
type RecordStore interface {
	LoadAll(ctx context.Context) ([]types.ServiceRecord, error)
	SaveAll(ctx context.Context, records []types.ServiceRecord) error
}

// SupplierStore persists the shared supplier catalog, one name per entry,
// with the same whole-collection replace semantics.
type SupplierStore interface {
	LoadSuppliers(ctx context.Context) ([]string, error)
	SaveSuppliers(ctx context.Context, names []string) error
}
