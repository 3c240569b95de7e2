package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tenrocafes/agenda/internal/agenda/datefmt"
	"github.com/tenrocafes/agenda/internal/agenda/recurrence"
	"github.com/tenrocafes/agenda/internal/agenda/store"
	"github.com/tenrocafes/agenda/internal/agenda/types"
)

var (
	// ErrAccessDenied covers a wrong credential and any attempt to touch
	// another store's records.
	ErrAccessDenied = errors.New("access denied")

	// ErrUnauthenticated is the open-mode refusal: no store, no credential.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidSupplier blocks a scoped caller writing a supplier name
	// that is not in the shared catalog.
	ErrInvalidSupplier = errors.New("supplier not in catalog")

	// ErrUnknownStore rejects a store outside the enumerated tenant set.
	ErrUnknownStore = errors.New("unknown store")

	ErrRecordNotFound = errors.New("record not found")
)

// ScheduleService orchestrates the visit collection: normalization,
// next-due derivation, access scoping, and period filtering.
type ScheduleService struct {
	records   store.RecordStore
	suppliers *SupplierService
	access    *AccessService
	log       zerolog.Logger
}

func NewScheduleService(records store.RecordStore, suppliers *SupplierService, access *AccessService, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		records:   records,
		suppliers: suppliers,
		access:    access,
		log:       log,
	}
}

// List returns the records visible to the caller, optionally narrowed to a
// service-date period. Admin sees everything, a scoped caller only their
// store; open and denied callers are refused.
func (s *ScheduleService) List(ctx context.Context, mode types.AccessMode, from, to string) ([]types.ServiceRecord, error) {
	if err := requireRead(mode); err != nil {
		return nil, err
	}

	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if mode.Level == types.AccessStoreScoped {
		scoped := make([]types.ServiceRecord, 0, len(records))
		for _, r := range records {
			if r.Store == mode.Store {
				scoped = append(scoped, r)
			}
		}
		records = scoped
	}

	return FilterByPeriod(records, from, to), nil
}

// Create validates and appends one visit, returning the stored record.
func (s *ScheduleService) Create(ctx context.Context, mode types.AccessMode, in types.RecordInput) (types.ServiceRecord, error) {
	if err := requireWrite(mode); err != nil {
		return types.ServiceRecord{}, err
	}

	rec, err := s.buildRecord(ctx, mode, in)
	if err != nil {
		return types.ServiceRecord{}, err
	}

	records, err := s.load(ctx)
	if err != nil {
		return types.ServiceRecord{}, err
	}
	if err := s.records.SaveAll(ctx, append(records, rec)); err != nil {
		return types.ServiceRecord{}, err
	}

	s.log.Info().
		Str("store", rec.Store).
		Str("supplier", rec.Supplier).
		Str("next_due", rec.NextDue).
		Msg("record created")
	return rec, nil
}

// Update rewrites the record at idx in place, recomputing derived fields.
// A scoped caller may only edit records of their own store, and the
// replacement keeps their scope regardless of the submitted store value.
func (s *ScheduleService) Update(ctx context.Context, mode types.AccessMode, idx int, in types.RecordInput) (types.ServiceRecord, error) {
	if err := requireWrite(mode); err != nil {
		return types.ServiceRecord{}, err
	}

	records, err := s.load(ctx)
	if err != nil {
		return types.ServiceRecord{}, err
	}
	if idx < 0 || idx >= len(records) {
		return types.ServiceRecord{}, ErrRecordNotFound
	}
	if mode.Level == types.AccessStoreScoped && records[idx].Store != mode.Store {
		return types.ServiceRecord{}, ErrAccessDenied
	}

	rec, err := s.buildRecord(ctx, mode, in)
	if err != nil {
		return types.ServiceRecord{}, err
	}

	records[idx] = rec
	if err := s.records.SaveAll(ctx, records); err != nil {
		return types.ServiceRecord{}, err
	}
	return rec, nil
}

// Delete removes the record at idx, subject to the same scope rule as
// Update.
func (s *ScheduleService) Delete(ctx context.Context, mode types.AccessMode, idx int) error {
	if err := requireWrite(mode); err != nil {
		return err
	}

	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(records) {
		return ErrRecordNotFound
	}
	if mode.Level == types.AccessStoreScoped && records[idx].Store != mode.Store {
		return ErrAccessDenied
	}

	records = append(records[:idx:idx], records[idx+1:]...)
	return s.records.SaveAll(ctx, records)
}

// buildRecord turns a raw submission into a stored record: the store field
// is forced to the caller's scope for scoped callers and validated against
// the tenant set for admins, the supplier is checked against the catalog,
// and date/time/next-due are canonicalized and derived.
func (s *ScheduleService) buildRecord(ctx context.Context, mode types.AccessMode, in types.RecordInput) (types.ServiceRecord, error) {
	storeName := strings.TrimSpace(in.Store)
	if mode.Level == types.AccessStoreScoped {
		storeName = mode.Store
	} else if !s.access.KnownStore(storeName) {
		return types.ServiceRecord{}, ErrUnknownStore
	}

	supplier := NormalizeName(in.Supplier)
	if supplier != "" {
		known, err := s.suppliers.contains(ctx, supplier)
		if err != nil {
			return types.ServiceRecord{}, err
		}
		if !known {
			if mode.Level != types.AccessAdmin {
				return types.ServiceRecord{}, ErrInvalidSupplier
			}
			// Admins introduce new suppliers on the fly.
			if err := s.suppliers.ensure(ctx, supplier); err != nil {
				return types.ServiceRecord{}, err
			}
		}
	}

	date := datefmt.NormalizeDate(in.ServiceDate)
	clock := datefmt.NormalizeTime(in.ServiceTime)
	policy := strings.TrimSpace(in.Recurrence)

	return types.ServiceRecord{
		Store:       storeName,
		Supplier:    supplier,
		Technician:  strings.TrimSpace(in.Technician),
		ServiceDate: date,
		ServiceTime: clock,
		Recurrence:  policy,
		NextDue:     recurrence.NextDue(date, clock, policy),
		Notes:       strings.TrimSpace(in.Notes),
	}, nil
}

// load reads the collection, canonicalizing legacy date/time values and
// backfilling missing next-due dates in memory. Nothing is persisted here;
// the next save writes the healed values back.
func (s *ScheduleService) load(ctx context.Context) ([]types.ServiceRecord, error) {
	records, err := s.records.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].ServiceDate = datefmt.NormalizeDate(records[i].ServiceDate)
		records[i].ServiceTime = datefmt.NormalizeTime(records[i].ServiceTime)
		if records[i].NextDue == "" {
			records[i].NextDue = recurrence.NextDue(
				records[i].ServiceDate, records[i].ServiceTime, records[i].Recurrence)
		}
	}
	return records, nil
}

func requireRead(mode types.AccessMode) error {
	switch mode.Level {
	case types.AccessAdmin, types.AccessStoreScoped:
		return nil
	case types.AccessOpen:
		return ErrUnauthenticated
	default:
		return ErrAccessDenied
	}
}

func requireWrite(mode types.AccessMode) error {
	// Same gate as reads; the scope rules on individual records are
	// enforced per operation.
	return requireRead(mode)
}
