package sqlerr

import (
	"errors"
	"strings"
)

// Kind identifies the class of a database failure. The set mirrors the
// standard database exception hierarchy:
//
//	Warning
//	Error
//	├── InterfaceError
//	└── DatabaseError
//	    ├── DataError
//	    ├── OperationalError
//	    ├── IntegrityError
//	    ├── InternalError
//	    ├── ProgrammingError
//	    └── NotSupportedError
//
// The zero value is KindError, the generic base kind.
type Kind int

const (
	KindError Kind = iota
	KindWarning
	KindInterfaceError
	KindDatabaseError
	KindDataError
	KindOperationalError
	KindIntegrityError
	KindInternalError
	KindProgrammingError
	KindNotSupportedError
)

var kindNames = [...]string{
	KindError:             "Error",
	KindWarning:           "Warning",
	KindInterfaceError:    "InterfaceError",
	KindDatabaseError:     "DatabaseError",
	KindDataError:         "DataError",
	KindOperationalError:  "OperationalError",
	KindIntegrityError:    "IntegrityError",
	KindInternalError:     "InternalError",
	KindProgrammingError:  "ProgrammingError",
	KindNotSupportedError: "NotSupportedError",
}

// Kind sentinels. Use them with errors.Is; a constructed error matches the
// sentinel of its own kind and of every ancestor kind, so
// errors.Is(err, ErrDatabase) is true for an IntegrityError.
var (
	ErrError        = errors.New("Error")
	ErrWarning      = errors.New("Warning")
	ErrInterface    = errors.New("InterfaceError")
	ErrDatabase     = errors.New("DatabaseError")
	ErrData         = errors.New("DataError")
	ErrOperational  = errors.New("OperationalError")
	ErrIntegrity    = errors.New("IntegrityError")
	ErrInternal     = errors.New("InternalError")
	ErrProgramming  = errors.New("ProgrammingError")
	ErrNotSupported = errors.New("NotSupportedError")
)

var kindSentinels = [...]error{
	KindError:             ErrError,
	KindWarning:           ErrWarning,
	KindInterfaceError:    ErrInterface,
	KindDatabaseError:     ErrDatabase,
	KindDataError:         ErrData,
	KindOperationalError:  ErrOperational,
	KindIntegrityError:    ErrIntegrity,
	KindInternalError:     ErrInternal,
	KindProgrammingError:  ErrProgramming,
	KindNotSupportedError: ErrNotSupported,
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		kinds = append(kinds, Kind(k))
	}
	return kinds
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// String returns the exception class name, e.g. "IntegrityError".
// Undefined values render as "Error".
func (k Kind) String() string {
	if !k.Valid() {
		return kindNames[KindError]
	}
	return kindNames[k]
}

// Parent returns the kind k derives from. Warning and Error are roots and
// return themselves; undefined values return KindError.
func (k Kind) Parent() Kind {
	switch k {
	case KindWarning:
		return KindWarning
	case KindInterfaceError, KindDatabaseError:
		return KindError
	case KindDataError, KindOperationalError, KindIntegrityError,
		KindInternalError, KindProgrammingError, KindNotSupportedError:
		return KindDatabaseError
	default:
		return KindError
	}
}

// IsA reports whether k equals ancestor or derives from it.
func (k Kind) IsA(ancestor Kind) bool {
	if !k.Valid() {
		k = KindError
	}
	for {
		if k == ancestor {
			return true
		}
		parent := k.Parent()
		if parent == k {
			return false
		}
		k = parent
	}
}

// Sentinel returns the errors.Is target for k.
func (k Kind) Sentinel() error {
	if !k.Valid() {
		return ErrError
	}
	return kindSentinels[k]
}

// ParseKind resolves a class name such as "ProgrammingError" (case-insensitive).
// The "Error" suffix may be omitted except for the Warning and Error roots.
func ParseKind(name string) (Kind, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return KindError, false
	}
	for k, n := range kindNames {
		if strings.EqualFold(name, n) || strings.EqualFold(name+"Error", n) {
			return Kind(k), true
		}
	}
	return KindError, false
}

// kindOfSentinel maps a sentinel back to its kind.
func kindOfSentinel(target error) (Kind, bool) {
	for k, s := range kindSentinels {
		if s == target {
			return Kind(k), true
		}
	}
	return KindError, false
}
