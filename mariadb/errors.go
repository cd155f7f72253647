package mariadb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/aalemi-dev/odbcerr/pkg/gormerr"
	"github.com/aalemi-dev/odbcerr/sqlerr"
	"github.com/go-sql-driver/mysql"
)

// numberStates maps server and client error numbers to SQLSTATEs for errors
// the server reports as HY000, or without a SQLSTATE at all.
var numberStates = map[uint16]sqlerr.SQLState{
	1040: "08004", // ER_CON_COUNT_ERROR
	1044: "42000", // ER_DBACCESS_DENIED_ERROR
	1045: "28000", // ER_ACCESS_DENIED_ERROR
	1048: "23000", // ER_BAD_NULL_ERROR
	1049: "42000", // ER_BAD_DB_ERROR
	1054: "42S22", // ER_BAD_FIELD_ERROR
	1062: "23000", // ER_DUP_ENTRY
	1064: "42000", // ER_PARSE_ERROR
	1146: "42S02", // ER_NO_SUCH_TABLE
	1205: "HYT00", // ER_LOCK_WAIT_TIMEOUT
	1213: "40001", // ER_LOCK_DEADLOCK
	1264: "22003", // ER_WARN_DATA_OUT_OF_RANGE
	1317: "HY008", // ER_QUERY_INTERRUPTED
	1365: "22012", // ER_DIVISION_BY_ZERO
	1406: "22001", // ER_DATA_TOO_LONG
	1451: "23000", // ER_ROW_IS_REFERENCED_2
	1452: "23000", // ER_NO_REFERENCED_ROW_2
	1586: "23000", // ER_DUP_ENTRY_WITH_KEY_NAME
	1792: "25006", // ER_CANT_EXECUTE_IN_READ_ONLY_TRANSACTION
	3024: "HYT00", // ER_QUERY_TIMEOUT
	2002: "08001", // CR_CONNECTION_ERROR
	2003: "08001", // CR_CONN_HOST_ERROR
	2006: "08S01", // CR_SERVER_GONE_ERROR
	2013: "08S01", // CR_SERVER_LOST
}

// Records returns the diagnostic records carried by err, in the order they
// appear in its wrap tree. Each *mysql.MySQLError becomes one record with the
// error number as native code. Without a server error, gorm sentinels and
// client-side conditions (driver errors, no rows, timeouts, cancellation,
// broken connections) yield a single record. Other errors yield none, as
// does nil.
func Records(err error) []sqlerr.DiagnosticRecord {
	if err == nil {
		return nil
	}
	var records []sqlerr.DiagnosticRecord
	sqlerr.Walk(err, func(e error) bool {
		if v, ok := e.(*mysql.MySQLError); ok {
			records = append(records, mysqlRecord(v))
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

// StateOf returns the SQLSTATE of a server error: the one it carries unless
// that is missing or HY000 and the error number is known.
func StateOf(e *mysql.MySQLError) sqlerr.SQLState {
	if e == nil {
		return sqlerr.DefaultSQLState
	}
	state := sqlerr.DefaultSQLState
	if e.SQLState != [5]byte{} {
		state = sqlerr.NormalizeSQLState(string(e.SQLState[:]))
	}
	if state == sqlerr.DefaultSQLState {
		if mapped, ok := numberStates[e.Number]; ok {
			return mapped
		}
	}
	return state
}

func mysqlRecord(e *mysql.MySQLError) sqlerr.DiagnosticRecord {
	return sqlerr.NewRecord(string(StateOf(e)), int32(e.Number), e.Message)
}

func source(err error) string {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return "mysql"
	}
	if _, ok := gormerr.Record(err); ok {
		return "gorm"
	}
	if _, ok := clientRecord(err); ok {
		return "client"
	}
	return "unknown"
}

func clientRecord(err error) (sqlerr.DiagnosticRecord, bool) {
	if rec, ok := gormerr.Record(err); ok {
		return rec, true
	}
	msg := err.Error()
	var netErr *net.OpError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return sqlerr.NewRecord(string(sqlerr.SQLStateNoData), 0, msg), true
	case errors.Is(err, context.Canceled):
		return sqlerr.NewRecord(string(sqlerr.SQLStateOperationCanceled), 0, msg), true
	case errors.Is(err, context.DeadlineExceeded):
		return sqlerr.NewRecord(string(sqlerr.SQLStateTimeout), 0, msg), true
	case errors.Is(err, mysql.ErrNoTLS):
		return sqlerr.NewRecord(string(sqlerr.SQLStateUnableToConnect), 0, msg), true
	case errors.Is(err, mysql.ErrCleartextPassword), errors.Is(err, mysql.ErrNativePassword), errors.Is(err, mysql.ErrOldPassword):
		return sqlerr.NewRecord(string(sqlerr.SQLStateInvalidAuthSpec), 0, msg), true
	case errors.Is(err, mysql.ErrInvalidConn), errors.Is(err, mysql.ErrMalformPkt), errors.Is(err, mysql.ErrPktSync),
		errors.Is(err, mysql.ErrPktSyncMul), errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone),
		errors.As(err, &netErr):
		return sqlerr.NewRecord(string(sqlerr.SQLStateCommLinkFailure), 0, msg), true
	case errors.Is(err, sql.ErrTxDone):
		return sqlerr.NewRecord(string(sqlerr.SQLStateInvalidTxState), 0, msg), true
	}
	return sqlerr.DiagnosticRecord{}, false
}
