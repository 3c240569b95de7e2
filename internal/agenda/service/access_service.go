package service

import (
	"strings"

	"github.com/tenrocafes/agenda/internal/agenda/types"
)

// AccessConfig carries the static credential material. One PIN per store;
// StorePINs keys are the enumerated tenant set. PINs are compared by plain
// string equality — a known weakness inherited from the legacy system, not
// a timing-safe check.
type AccessConfig struct {
	AdminPIN  string
	StorePINs map[string]string
}

// AccessService classifies a (store, credential) pair into an AccessMode.
type AccessService struct {
	cfg AccessConfig
}

func NewAccessService(cfg AccessConfig) *AccessService {
	return &AccessService{cfg: cfg}
}

// Resolve decides the access mode for one request. The admin PIN is checked
// first and wins even when a store is also named. A named store with a
// wrong or missing PIN is denied; no store at all is open (unauthenticated).
func (s *AccessService) Resolve(store, pin string) types.AccessMode {
	store = strings.TrimSpace(store)
	pin = strings.TrimSpace(pin)

	if s.cfg.AdminPIN != "" && pin == s.cfg.AdminPIN {
		return types.Admin()
	}
	if store != "" && pin != "" {
		if want, ok := s.cfg.StorePINs[store]; ok && want == pin {
			return types.StoreScoped(store)
		}
	}
	if store != "" {
		return types.Denied()
	}
	return types.Open()
}

// KnownStore reports whether name belongs to the enumerated tenant set.
func (s *AccessService) KnownStore(name string) bool {
	_, ok := s.cfg.StorePINs[strings.TrimSpace(name)]
	return ok
}
