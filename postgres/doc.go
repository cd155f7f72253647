// Package postgres adapts PostgreSQL driver errors to odbcerr diagnostics.
//
// Records extracts diagnostic records from pgx (*pgconn.PgError) and lib/pq
// (*pq.Error) errors anywhere in an error tree, falling back to gorm
// sentinels and client-side conditions. A Translator posts them to a
// sqlerr.DiagArea and builds the classified error through the handle path:
//
//	t := postgres.NewTranslator(sqlerr.Config{})
//	if _, err := conn.Exec(ctx, "INSERT INTO users ..."); err != nil {
//	    err = t.TranslateError("SQLExecDirect", err)
//	    if errors.Is(err, sqlerr.ErrIntegrity) {
//	        // unique or foreign key violation
//	    }
//	}
//
// # Notices
//
// Server notices are warnings attached to a statement. NoticeHandler (pgx)
// and PQNoticeHandler (lib/pq) post them into an area; TranslateAreaError
// ranks a failure ahead of them, and Factory.StatementHasSQLState finds any
// of them:
//
//	area := sqlerr.NewDiagArea()
//	cfg.OnNotice = postgres.NoticeHandler(area)
//
// # gorm
//
// NewPostgres opens a gorm connection with the translation installed as a
// plugin, so errors from db.DB() calls are already classified while still
// unwrapping to the driver error and to gorm's sentinels.
package postgres
