// Package sqlite adapts SQLite (modernc.org/sqlite) errors to odbcerr
// diagnostics.
//
// SQLite reports result codes instead of SQLSTATEs. StateOf maps primary
// codes to their closest SQLSTATE and refines extended constraint codes,
// so a UNIQUE violation classifies as 23505 just like on PostgreSQL. The
// extended code is kept as the native code.
//
//	db, err := sqlite.NewSQLite(sqlite.Config{ForeignKeys: true}, nil)
//	...
//	_, err = db.ExecContext(ctx, "INSERT INTO users(id) VALUES (1)")
//	if sqlerr.HasSQLState(err, "23505") {
//	    // duplicate key
//	}
package sqlite
