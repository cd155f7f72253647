package dbapi

import "github.com/aalemi-dev/odbcerr/sqlerr"

// Raiser is the propagation boundary between classified errors and the host
// error path. *Dispatcher implements it.
type Raiser interface {
	// Raise builds the host exception for an explicit kind and payload.
	Raise(kind sqlerr.Kind, state sqlerr.SQLState, native int32, hasNative bool, message string) error

	// FromError raises a constructed error; nil yields nil.
	FromError(e *sqlerr.Error) error

	// Translate raises the *sqlerr.Error found in err's chain, if any.
	Translate(err error) error
}
