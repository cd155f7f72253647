package sqlerr

import (
	"errors"
	"time"
)

// HasSQLState reports whether err is, or wraps, an *Error whose primary
// SQLSTATE equals state (case-insensitive). It is safe to call with a nil err.
func HasSQLState(err error, state string) bool {
	if err == nil {
		return false
	}
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return false
	}
	return e.sqlstate.Equal(state)
}

// StatementHasSQLState re-reads the diagnostics of stmt and reports whether
// any record, not only the first, carries state. A statement can post several
// records for one call, e.g. a truncation warning after other warnings, and
// callers need to find the one they branch on wherever it is.
func (f *Factory) StatementHasSQLState(stmt Handle, state string) bool {
	start := time.Now()
	matched, n := false, 0
	if !stmt.IsNull() {
		for rec := range f.reader.HandleRecords(stmt) {
			n++
			if rec.SQLState.Equal(state) {
				matched = true
				break
			}
		}
	}
	f.observeProbe(string(NormalizeSQLState(state)), time.Since(start), matched, n)
	return matched
}

// HasMoreData reports whether stmt posted 01004 (string data, right
// truncated), meaning a chunked read should continue.
func (f *Factory) HasMoreData(stmt Handle) bool {
	return f.StatementHasSQLState(stmt, string(SQLStateDataTruncated))
}
