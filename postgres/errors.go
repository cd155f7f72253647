package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/aalemi-dev/odbcerr/pkg/gormerr"
	"github.com/aalemi-dev/odbcerr/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Records returns the diagnostic records carried by err, in the order they
// appear in its wrap tree. Server errors from pgx (*pgconn.PgError) and
// lib/pq (*pq.Error) become one record each. Without a server error, gorm
// sentinels and client-side conditions (no rows, timeouts, cancellation,
// failed connects, broken connections) yield a single record. Other errors
// yield none, as does nil.
func Records(err error) []sqlerr.DiagnosticRecord {
	if err == nil {
		return nil
	}
	var records []sqlerr.DiagnosticRecord
	sqlerr.Walk(err, func(e error) bool {
		switch v := e.(type) {
		case *pgconn.PgError:
			records = append(records, pgRecord(v))
		case *pq.Error:
			records = append(records, pqRecord(v))
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

// source names the kind of error Records found, for observability.
func source(err error) string {
	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		return "pgconn"
	case errors.As(err, &pqErr):
		return "pq"
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
	var connectErr *pgconn.ConnectError
	var netErr *net.OpError
	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return sqlerr.NewRecord(string(sqlerr.SQLStateNoData), 0, msg), true
	case errors.Is(err, context.Canceled):
		return sqlerr.NewRecord(string(sqlerr.SQLStateOperationCanceled), 0, msg), true
	case errors.As(err, &connectErr):
		if pgconn.Timeout(err) {
			return sqlerr.NewRecord(string(sqlerr.SQLStateConnectTimeout), 0, msg), true
		}
		return sqlerr.NewRecord(string(sqlerr.SQLStateUnableToConnect), 0, msg), true
	case pgconn.Timeout(err), errors.Is(err, context.DeadlineExceeded):
		return sqlerr.NewRecord(string(sqlerr.SQLStateTimeout), 0, msg), true
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone), errors.As(err, &netErr):
		return sqlerr.NewRecord(string(sqlerr.SQLStateCommLinkFailure), 0, msg), true
	case errors.Is(err, sql.ErrTxDone):
		return sqlerr.NewRecord(string(sqlerr.SQLStateInvalidTxState), 0, msg), true
	}
	return sqlerr.DiagnosticRecord{}, false
}

func pgRecord(e *pgconn.PgError) sqlerr.DiagnosticRecord {
	return sqlerr.NewRecord(e.Code, 0, serverMessage(e.Severity, e.Message, e.Detail, e.Hint))
}

func pqRecord(e *pq.Error) sqlerr.DiagnosticRecord {
	return sqlerr.NewRecord(string(e.Code), 0, serverMessage(e.Severity, e.Message, e.Detail, e.Hint))
}

// serverMessage renders a server report the way psql prints it, on one line.
func serverMessage(severity, message, detail, hint string) string {
	var b strings.Builder
	if severity != "" {
		b.WriteString(severity)
		b.WriteString(": ")
	}
	b.WriteString(message)
	if detail != "" {
		b.WriteString(" DETAIL: ")
		b.WriteString(detail)
	}
	if hint != "" {
		b.WriteString(" HINT: ")
		b.WriteString(hint)
	}
	return b.String()
}
