package logger

import (
	"context"
	"errors"

	"github.com/aalemi-dev/odbcerr/sqlerr"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// diagnostic is implemented by errors that describe themselves as log fields.
type diagnostic interface {
	error
	Fields() map[string]interface{}
}

// LevelFor picks the level a database error deserves:
//   - no data (class 02): debug
//   - warnings, and failures that usually clear on retry: warn
//   - everything else, including errors without a SQLSTATE: error
//
// A nil err is info.
func LevelFor(err error) zapcore.Level {
	if err == nil {
		return zapcore.InfoLevel
	}
	var e *sqlerr.Error
	if !errors.As(err, &e) {
		return zapcore.ErrorLevel
	}
	switch {
	case e.SQLState().Class() == "02":
		return zapcore.DebugLevel
	case e.Kind().IsA(sqlerr.KindWarning), sqlerr.IsRetryable(err):
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// extractTracingFields returns trace_id and span_id of the recording span in
// ctx, or nothing when tracing is disabled or there is no such span.
func (l *LoggerClient) extractTracingFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return nil
	}

	spanContext := span.SpanContext()
	if !spanContext.IsValid() {
		return nil
	}

	return []zap.Field{
		zap.String("trace_id", spanContext.TraceID().String()),
		zap.String("span_id", spanContext.SpanID().String()),
	}
}

// convertToZapFields turns err and the field maps into zap fields.
//
// When err wraps a classified database error (anything in its tree with a
// Fields method, such as *sqlerr.Error or a dbapi exception), its sqlstate,
// error_kind and native_code are logged as separate fields so they can be
// queried without parsing the message.
func (l *LoggerClient) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var zapFields []zap.Field
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
		var d diagnostic
		if errors.As(err, &d) {
			for key, value := range d.Fields() {
				zapFields = append(zapFields, zap.Any(key, value))
			}
		}
	}

	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			zapFields = append(zapFields, zap.Any(key, value))
		}
	}
	return zapFields
}

// write is the single sink of every logging method. Fields are only built
// when the level is enabled.
func (l *LoggerClient) write(ctx context.Context, level zapcore.Level, msg string, err error, fields []map[string]interface{}) {
	ce := l.Zap.Check(level, msg)
	if ce == nil {
		return
	}
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	ce.Write(zapFields...)
}

// Debug logs a debug-level message.
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.write(context.Background(), zapcore.DebugLevel, msg, err, fields)
}

// Info logs an informational message.
//
// Example:
//
//	log.Info("diagnostics collected", nil, map[string]interface{}{
//	    "function": "SQLExecute",
//	    "records":  2,
//	})
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.write(context.Background(), zapcore.InfoLevel, msg, err, fields)
}

// Warn logs a warning.
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.write(context.Background(), zapcore.WarnLevel, msg, err, fields)
}

// Error logs an error.
//
// Example:
//
//	if err := translator.TranslateError("SQLExecute", dbErr); err != nil {
//	    log.Error("insert order failed", err, map[string]interface{}{
//	        "order_id": id,
//	    })
//	}
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.write(context.Background(), zapcore.ErrorLevel, msg, err, fields)
}

// Fatal logs the message and terminates the process with os.Exit(1).
func (l *LoggerClient) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.write(context.Background(), zapcore.FatalLevel, msg, err, fields)
}

// DebugWithContext is Debug with trace correlation.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.DebugLevel, msg, err, fields)
}

// InfoWithContext is Info with trace correlation.
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.InfoLevel, msg, err, fields)
}

// WarnWithContext is Warn with trace correlation.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.WarnLevel, msg, err, fields)
}

// ErrorWithContext is Error with trace correlation.
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.ErrorLevel, msg, err, fields)
}

// FatalWithContext is Fatal with trace correlation.
func (l *LoggerClient) FatalWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.FatalLevel, msg, err, fields)
}

// SQLError logs err at LevelFor(err). It writes nothing for a nil err.
//
// Example:
//
//	_, err := db.ExecContext(ctx, query)
//	log.SQLError(ctx, "statement failed", err, map[string]interface{}{"query": query})
func (l *LoggerClient) SQLError(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	if err == nil {
		return
	}
	l.write(ctx, LevelFor(err), msg, err, fields)
}
