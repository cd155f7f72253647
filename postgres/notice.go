package postgres

import (
	"github.com/aalemi-dev/odbcerr/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// NoticeHandler returns a pgx notice handler posting server notices to area,
// so warnings raised during a statement (RAISE WARNING, truncation notices)
// can be probed with Factory.StatementHasSQLState.
//
//	cfg, _ := pgconn.ParseConfig(dsn)
//	cfg.OnNotice = postgres.NoticeHandler(area)
//
// The handler runs on the goroutine executing the statement; area must not be
// used concurrently with it.
func NoticeHandler(area *sqlerr.DiagArea) pgconn.NoticeHandler {
	return func(_ *pgconn.PgConn, n *pgconn.Notice) {
		if area == nil || n == nil {
			return
		}
		area.Post(noticeRecord(n.Code, n.Severity, n.Message, n.Detail, n.Hint))
	}
}

// PQNoticeHandler is NoticeHandler for lib/pq, for use with
// pq.ConnectorWithNoticeHandler.
func PQNoticeHandler(area *sqlerr.DiagArea) func(*pq.Error) {
	return func(n *pq.Error) {
		if area == nil || n == nil {
			return
		}
		area.Post(noticeRecord(string(n.Code), n.Severity, n.Message, n.Detail, n.Hint))
	}
}

// noticeRecord posts informational notices (class 00) as general warnings.
func noticeRecord(code, severity, message, detail, hint string) sqlerr.DiagnosticRecord {
	state := sqlerr.NormalizeSQLState(code)
	if state.Class() == "00" {
		state = sqlerr.SQLStateWarning
	}
	return sqlerr.NewRecord(string(state), 0, serverMessage(severity, message, detail, hint))
}
