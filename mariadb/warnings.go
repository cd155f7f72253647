package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aalemi-dev/odbcerr/sqlerr"
)

// warnDataTruncated is ER_WARN_DATA_TRUNCATED.
const warnDataTruncated = 1265

// Queryer is satisfied by *sql.DB, *sql.Conn and *sql.Tx. Warnings are
// per session, so pass the *sql.Conn or *sql.Tx the statement ran on.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// CollectWarnings runs SHOW WARNINGS and posts the result into area, so
// warnings of the last statement can be probed with
// Factory.StatementHasSQLState. It returns how many records were posted.
func CollectWarnings(ctx context.Context, q Queryer, area *sqlerr.DiagArea) (int, error) {
	if area == nil {
		return 0, errors.New("collect warnings: nil diagnostic area")
	}
	rows, err := q.QueryContext(ctx, "SHOW WARNINGS")
	if err != nil {
		return 0, fmt.Errorf("show warnings: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var level, message string
		var code uint16
		if err := rows.Scan(&level, &code, &message); err != nil {
			return n, fmt.Errorf("scan warning: %w", err)
		}
		area.Post(warningRecord(level, code, message))
		n++
	}
	return n, rows.Err()
}

// warningRecord maps a SHOW WARNINGS row. Notes and warnings are class 01;
// errors are resolved like server errors.
func warningRecord(level string, code uint16, message string) sqlerr.DiagnosticRecord {
	if strings.EqualFold(level, "error") {
		state, ok := numberStates[code]
		if !ok {
			state = sqlerr.DefaultSQLState
		}
		return sqlerr.NewRecord(string(state), int32(code), message)
	}
	if code == warnDataTruncated {
		return sqlerr.NewRecord(string(sqlerr.SQLStateDataTruncated), int32(code), message)
	}
	return sqlerr.NewRecord(string(sqlerr.SQLStateWarning), int32(code), message)
}
