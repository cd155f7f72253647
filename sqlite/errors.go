package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/aalemi-dev/odbcerr/sqlerr"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// primaryStates maps SQLite primary result codes to SQLSTATEs. Codes not
// listed map to HY000.
var primaryStates = map[int]sqlerr.SQLState{
	sqlite3.SQLITE_ERROR:      "42000",
	sqlite3.SQLITE_INTERNAL:   "XX000",
	sqlite3.SQLITE_PERM:       "42501",
	sqlite3.SQLITE_ABORT:      "HY008",
	sqlite3.SQLITE_BUSY:       "HYT00",
	sqlite3.SQLITE_LOCKED:     "HYT00",
	sqlite3.SQLITE_NOMEM:      "HY001",
	sqlite3.SQLITE_READONLY:   "25006",
	sqlite3.SQLITE_INTERRUPT:  "HY008",
	sqlite3.SQLITE_IOERR:      "58030",
	sqlite3.SQLITE_CORRUPT:    "XX001",
	sqlite3.SQLITE_FULL:       "53100",
	sqlite3.SQLITE_CANTOPEN:   "08001",
	sqlite3.SQLITE_PROTOCOL:   "08S01",
	sqlite3.SQLITE_TOOBIG:     "22001",
	sqlite3.SQLITE_CONSTRAINT: "23000",
	sqlite3.SQLITE_MISMATCH:   "22005",
	sqlite3.SQLITE_MISUSE:     "HY010",
	sqlite3.SQLITE_AUTH:       "28000",
	sqlite3.SQLITE_RANGE:      "07009",
	sqlite3.SQLITE_NOTADB:     "XX001",
}

// extendedStates refines constraint violations to the SQLSTATEs other
// databases report for them.
var extendedStates = map[int]sqlerr.SQLState{
	sqlite3.SQLITE_CONSTRAINT_UNIQUE:     "23505",
	sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY: "23505",
	sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY: "23503",
	sqlite3.SQLITE_CONSTRAINT_NOTNULL:    "23502",
	sqlite3.SQLITE_CONSTRAINT_CHECK:      "23514",
}

// StateOf maps an SQLite result code, primary or extended, to a SQLSTATE.
func StateOf(code int) sqlerr.SQLState {
	if state, ok := extendedStates[code]; ok {
		return state
	}
	if state, ok := primaryStates[code&0xff]; ok {
		return state
	}
	return sqlerr.DefaultSQLState
}

// Records returns one diagnostic record per *sqlite.Error in err's tree, with
// the extended result code as native code. Without one, client-side
// conditions (no rows, closed connections, context errors) yield a single
// record. Other errors yield none, as does nil.
func Records(err error) []sqlerr.DiagnosticRecord {
	if err == nil {
		return nil
	}
	var records []sqlerr.DiagnosticRecord
	sqlerr.Walk(err, func(e error) bool {
		if v, ok := e.(*sqlite.Error); ok {
			records = append(records, sqlerr.NewRecord(string(StateOf(v.Code())), int32(v.Code()), v.Error()))
		}
		return true
	})
	if len(records) > 0 {
		return records
	}
	if rec, ok := clientRecord(err); ok {
		return []sqlerr.DiagnosticRecord{rec}
	}
	return nil
}

func source(err error) string {
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return "sqlite"
	}
	if _, ok := clientRecord(err); ok {
		return "client"
	}
	return "unknown"
}

func clientRecord(err error) (sqlerr.DiagnosticRecord, bool) {
	msg := err.Error()
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return sqlerr.NewRecord(string(sqlerr.SQLStateNoData), 0, msg), true
	case errors.Is(err, context.Canceled):
		return sqlerr.NewRecord(string(sqlerr.SQLStateOperationCanceled), 0, msg), true
	case errors.Is(err, context.DeadlineExceeded):
		return sqlerr.NewRecord(string(sqlerr.SQLStateTimeout), 0, msg), true
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, driver.ErrBadConn):
		return sqlerr.NewRecord(string(sqlerr.SQLStateConnectionNotOpen), 0, msg), true
	case errors.Is(err, sql.ErrTxDone):
		return sqlerr.NewRecord(string(sqlerr.SQLStateInvalidTxState), 0, msg), true
	}
	return sqlerr.DiagnosticRecord{}, false
}
