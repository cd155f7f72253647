package logger

import (
	"context"
)

// Logger is the structured logging API shared by the odbcerr packages.
// Every method takes an optional error and any number of field maps; later
// maps override earlier keys.
//
// This interface is implemented by the concrete *LoggerClient type.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})

	// The ...WithContext variants add trace_id and span_id when tracing is
	// enabled and ctx carries a recording span.
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	FatalWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// SQLError logs a database error at the level LevelFor picks from its
	// classification. A nil err writes nothing.
	SQLError(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
