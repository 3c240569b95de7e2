package memory

import (
	"context"
	"sync"

	"github.com/tenrocafes/agenda/internal/agenda/types"
)

// RecordStore keeps the visit collection in memory. It is intended for
// tests and dev environments.
type RecordStore struct {
	mu      sync.RWMutex
	records []types.ServiceRecord
}

func NewRecordStore(seed []types.ServiceRecord) *RecordStore {
	s := &RecordStore{}
	s.records = append(s.records, seed...)
	return s
}

func (s *RecordStore) LoadAll(_ context.Context) ([]types.ServiceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ServiceRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *RecordStore) SaveAll(_ context.Context, records []types.ServiceRecord) error {
	cp := make([]types.ServiceRecord, len(records))
	copy(cp, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cp
	return nil
}
