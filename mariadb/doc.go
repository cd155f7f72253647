// Package mariadb adapts MariaDB and MySQL driver errors to odbcerr
// diagnostics.
//
// Core Features:
//   - Records: one diagnostic record per *mysql.MySQLError in an error tree,
//     with the server error number as native code
//   - SQLSTATE recovery for errors the server reports as HY000 (lock wait
//     timeout, deadlock, lost connection, ...) from the error number
//   - Fallbacks for go-sql-driver client errors, gorm sentinels and context errors
//   - CollectWarnings: SHOW WARNINGS into a diagnostic area
//   - A gorm connection whose errors come back classified
//
// Basic Usage:
//
//	t := mariadb.NewTranslator(sqlerr.Config{})
//	if _, err := db.ExecContext(ctx, "INSERT INTO users (email) VALUES (?)", email); err != nil {
//		err = t.TranslateError("SQLExecDirect", err)
//		var e *sqlerr.Error
//		if errors.As(err, &e) {
//			code, _ := e.NativeCode() // 1062 for a duplicate entry
//			_ = code
//		}
//	}
//
// Warnings:
//
//	conn, _ := db.Conn(ctx)
//	_, _ = conn.ExecContext(ctx, "INSERT INTO t (c) VALUES (?)", long)
//	area := sqlerr.NewDiagArea()
//	_, _ = mariadb.CollectWarnings(ctx, conn, area)
//	truncated := t.Factory().HasMoreData(sqlerr.StatementHandle(area))
package mariadb
