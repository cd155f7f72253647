// Package dbapi is the propagation boundary of odbcerr.
//
// sqlerr constructs classified errors but never raises them. This package
// turns a *sqlerr.Error, or an explicit kind and payload, into one concrete
// exception type per kind (*IntegrityError, *OperationalError, ...) so host
// code can branch with errors.As on the exact class, or with errors.Is on a
// kind sentinel to match a whole branch of the hierarchy:
//
//	err := dbapi.FromError(factory.FromHandles("SQLExecute", pair))
//
//	var dup *dbapi.IntegrityError
//	if errors.As(err, &dup) {
//		log.Warn("duplicate row", err, dup.Fields())
//	}
//	if errors.Is(err, sqlerr.ErrDatabase) {
//		// any DatabaseError subclass
//	}
//
// The kind → constructor table can be overridden per Dispatcher with
// NewDispatcher; the default table is never modified.
package dbapi
