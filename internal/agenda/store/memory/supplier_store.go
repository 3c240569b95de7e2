package memory

import (
	"context"
	"sync"
)

// SupplierStore keeps the supplier catalog in memory.
type SupplierStore struct {
	mu    sync.RWMutex
	names []string
}

func NewSupplierStore(seed []string) *SupplierStore {
	s := &SupplierStore{}
	s.names = append(s.names, seed...)
	return s
}

func (s *SupplierStore) LoadSuppliers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out, nil
}

func (s *SupplierStore) SaveSuppliers(_ context.Context, names []string) error {
	cp := make([]string, len(names))
	copy(cp, names)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = cp
	return nil
}
