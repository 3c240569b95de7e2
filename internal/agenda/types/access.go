package types

// AccessLevel classifies what a request is allowed to see and touch.
type AccessLevel int

const (
	// AccessOpen means no store context and no credential were given.
	// Policy refuses listing and mutation in this mode.
	AccessOpen AccessLevel = iota

	// AccessDenied means a store was named but the credential did not match.
	AccessDenied

	// AccessStoreScoped restricts visibility and writes to a single store.
	AccessStoreScoped

	// AccessAdmin grants full visibility and mutation across all stores.
	AccessAdmin
)

func (l AccessLevel) String() string {
	switch l {
	case AccessOpen:
		return "open"
	case AccessDenied:
		return "denied"
	case AccessStoreScoped:
		return "store"
	case AccessAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// AccessMode is the resolved access decision for one request.
// Store is set only when Level is AccessStoreScoped.
type AccessMode struct {
	Level AccessLevel
	Store string
}

func Open() AccessMode   { return AccessMode{Level: AccessOpen} }
func Denied() AccessMode { return AccessMode{Level: AccessDenied} }
func Admin() AccessMode  { return AccessMode{Level: AccessAdmin} }

func StoreScoped(store string) AccessMode {
	return AccessMode{Level: AccessStoreScoped, Store: store}
}
