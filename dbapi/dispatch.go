package dbapi

import (
	"errors"

	"github.com/aalemi-dev/odbcerr/sqlerr"
)

// Constructor builds the host error for one kind.
type Constructor func(Exception) error

var defaultDispatch = map[sqlerr.Kind]Constructor{
	sqlerr.KindWarning:           func(e Exception) error { return &Warning{e} },
	sqlerr.KindError:             func(e Exception) error { return &Error{e} },
	sqlerr.KindInterfaceError:    func(e Exception) error { return &InterfaceError{e} },
	sqlerr.KindDatabaseError:     func(e Exception) error { return &DatabaseError{e} },
	sqlerr.KindDataError:         func(e Exception) error { return &DataError{e} },
	sqlerr.KindOperationalError:  func(e Exception) error { return &OperationalError{e} },
	sqlerr.KindIntegrityError:    func(e Exception) error { return &IntegrityError{e} },
	sqlerr.KindInternalError:     func(e Exception) error { return &InternalError{e} },
	sqlerr.KindProgrammingError:  func(e Exception) error { return &ProgrammingError{e} },
	sqlerr.KindNotSupportedError: func(e Exception) error { return &NotSupportedError{e} },
}

// DefaultDispatch returns a copy of the built-in kind → constructor table.
func DefaultDispatch() map[sqlerr.Kind]Constructor {
	table := make(map[sqlerr.Kind]Constructor, len(defaultDispatch))
	for k, c := range defaultDispatch {
		table[k] = c
	}
	return table
}

// Dispatcher turns classified errors into host exceptions. It is immutable
// and safe for concurrent use.
type Dispatcher struct {
	table map[sqlerr.Kind]Constructor
}

// Default is the dispatcher behind the package-level Raise, FromError and
// Translate.
var Default = NewDispatcher(nil)

// NewDispatcher returns a dispatcher using the default table with overrides
// applied. Entries for undefined kinds and nil constructors are ignored; the
// default table is never modified.
func NewDispatcher(overrides map[sqlerr.Kind]Constructor) *Dispatcher {
	table := DefaultDispatch()
	for k, c := range overrides {
		if k.Valid() && c != nil {
			table[k] = c
		}
	}
	return &Dispatcher{table: table}
}

// Raise builds the host exception for kind. An undefined kind is raised as
// *Error, and a constructor returning nil falls back to the default one.
func (d *Dispatcher) Raise(kind sqlerr.Kind, state sqlerr.SQLState, native int32, hasNative bool, message string) error {
	return d.raise(Exception{
		Kind:       kind,
		SQLState:   sqlerr.NormalizeSQLState(string(state)),
		NativeCode: native,
		HasNative:  hasNative,
		Message:    message,
	})
}

// FromError raises e. A nil e yields nil.
func (d *Dispatcher) FromError(e *sqlerr.Error) error {
	if e == nil {
		return nil
	}
	native, hasNative := e.NativeCode()
	return d.raise(Exception{
		Kind:       e.Kind(),
		SQLState:   e.SQLState(),
		NativeCode: native,
		HasNative:  hasNative,
		Message:    e.Message(),
		cause:      e,
	})
}

// Translate raises the first *sqlerr.Error in err's chain. Errors without
// one, and errors that already are host exceptions, are returned unchanged.
func (d *Dispatcher) Translate(err error) error {
	if err == nil {
		return nil
	}
	var detailed Detailed
	if errors.As(err, &detailed) {
		return err
	}
	var e *sqlerr.Error
	if !errors.As(err, &e) || e == nil {
		return err
	}
	return d.FromError(e)
}

func (d *Dispatcher) raise(ex Exception) error {
	if !ex.Kind.Valid() {
		ex.Kind = sqlerr.KindError
	}
	table := defaultDispatch
	if d != nil && d.table != nil {
		table = d.table
	}
	if err := table[ex.Kind](ex); err != nil {
		return err
	}
	return defaultDispatch[ex.Kind](ex)
}

// Raise is Default.Raise.
func Raise(kind sqlerr.Kind, state sqlerr.SQLState, native int32, hasNative bool, message string) error {
	return Default.Raise(kind, state, native, hasNative, message)
}

// FromError is Default.FromError.
func FromError(e *sqlerr.Error) error {
	return Default.FromError(e)
}

// Translate is Default.Translate.
func Translate(err error) error {
	return Default.Translate(err)
}
