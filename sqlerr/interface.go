package sqlerr

// ErrorFactory builds classified errors. *Factory is the implementation.
type ErrorFactory interface {
	// FromHandles reads the diagnostics of the failed call on pair and
	// returns the classified error. It never returns nil.
	FromHandles(function string, pair HandlePair) *Error

	// FromRecords is FromHandles for records the caller already holds.
	FromRecords(function string, records []DiagnosticRecord) *Error

	// FromTemplate builds an error from a SQLSTATE, an optional kind and a
	// printf-style message. An empty state means HY000; a nil kind is derived
	// from the state.
	FromTemplate(state string, kind *Kind, format string, args ...any) *Error

	// StatementHasSQLState re-reads the diagnostics of stmt and reports
	// whether any record carries state.
	StatementHasSQLState(stmt Handle, state string) bool
}
