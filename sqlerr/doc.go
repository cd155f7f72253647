// Package sqlerr turns failed database driver calls into classified errors.
//
// A connectivity driver reports a failure as a list of diagnostic records on
// the handle the call ran against, each carrying a SQLSTATE, a native error
// code and a message. This package reads those records, picks an error Kind
// from the SQLSTATE of the first one and composes every record into a single
// message, so that callers get one error value whose class tells them what
// went wrong (lost connection, constraint violation, bad SQL, ...).
//
// # Architecture
//
//   - Driver: the one capability needed from a driver, QueryDiagnostic(handle, n)
//   - DiagnosticReader: lazy, restartable walk over a handle's records
//   - Classify: total SQLSTATE -> Kind mapping (see Classes for the table)
//   - MessageComposer: records or a printf template -> message text
//   - Factory: FromHandles / FromRecords / FromTemplate entry points
//   - HasSQLState / Factory.StatementHasSQLState: predicates for control flow
//
// Handles are tagged optional references. The null handle is a normal value:
// a Factory asked to build an error from two null handles returns a generic
// HY000 error naming the failing function instead of failing itself.
//
// # Usage
//
//	area := sqlerr.NewDiagArea(
//		sqlerr.NewRecord("01004", 0, "Data truncated"),
//		sqlerr.NewRecord("HY000", 0, "General warning"),
//	)
//	f := sqlerr.NewFactory(sqlerr.Config{}, sqlerr.AreaDriver{})
//	stmt := sqlerr.StatementHandle(area)
//
//	err := f.FromHandles("SQLGetData", sqlerr.Pair(sqlerr.NullHandle, stmt))
//	err.Kind()     // Warning
//	err.SQLState() // 01004
//
//	if f.HasMoreData(stmt) {
//		// keep reading
//	}
//
// Template errors skip the driver entirely:
//
//	err := sqlerr.Newf("23000", "duplicate key %q", key) // IntegrityError
//
// Errors match their kind and every ancestor kind with errors.Is:
//
//	errors.Is(err, sqlerr.ErrIntegrity) // true
//	errors.Is(err, sqlerr.ErrDatabase)  // true
//
// # FX Module Integration
//
//	app := fx.New(
//	    sqlerr.FXModule,
//	    fx.Provide(func() sqlerr.Config { return sqlerr.Config{} }),
//	)
//
// Constructed errors are never propagated by this package. Use the dbapi
// package to turn them into concrete exception types at the point where the
// error leaves the driver layer.
package sqlerr
