package tracer

import (
	"context"
	"errors"
	"fmt"

	"github.com/aalemi-dev/odbcerr/sqlerr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

// Span attribute keys for classified database errors.
const (
	AttrSQLState   = "db.sqlstate"
	AttrErrorKind  = "db.error.kind"
	AttrNativeCode = "db.native_code"
	AttrFunction   = "db.function"
)

type spanImpl struct {
	span traceSpan.Span
}

// End ends the underlying OpenTelemetry span.
func (s *spanImpl) End() {
	s.span.End()
}

// SetAttributes adds attrs to the span. Strings, ints, int32, int64,
// float64 and bools keep their type; anything else is stored via fmt.Sprint.
func (s *spanImpl) SetAttributes(attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}
	s.span.SetAttributes(toAttributes(attrs)...)
}

// RecordError records err as an exception event and sets the span status to
// Error. If err wraps a *sqlerr.Error, its SQLSTATE, kind, native code and
// failing function are added as attributes.
func (s *spanImpl) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.SetAttributes(ErrorAttributes(err)...)
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// ErrorAttributes returns the span attributes describing the classified
// error in err's tree, or nil when there is none.
func ErrorAttributes(err error) []attribute.KeyValue {
	var e *sqlerr.Error
	if !errors.As(err, &e) || e == nil {
		return nil
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrSQLState, string(e.SQLState())),
		attribute.String(AttrErrorKind, e.Kind().String()),
	}
	if native, ok := e.NativeCode(); ok {
		attrs = append(attrs, attribute.Int(AttrNativeCode, int(native)))
	}
	if fn := e.Function(); fn != "" {
		attrs = append(attrs, attribute.String(AttrFunction, fn))
	}
	return attrs
}

func toAttributes(attrs map[string]interface{}) []attribute.KeyValue {
	out := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			out = append(out, attribute.String(k, val))
		case int:
			out = append(out, attribute.Int(k, val))
		case int32:
			out = append(out, attribute.Int(k, int(val)))
		case int64:
			out = append(out, attribute.Int64(k, val))
		case float64:
			out = append(out, attribute.Float64(k, val))
		case bool:
			out = append(out, attribute.Bool(k, val))
		default:
			out = append(out, attribute.String(k, fmt.Sprint(val)))
		}
	}
	return out
}

// StartSpan starts a span named name as a child of the span in ctx, if any.
// Always call span.End() when the operation completes.
//
// Example:
//
//	ctx, span := tracer.StartSpan(ctx, "save-order")
//	defer span.End()
//	if _, err := db.ExecContext(ctx, query); err != nil {
//	    span.RecordError(err) // adds db.sqlstate, db.error.kind, ...
//	    return err
//	}
func (t *TracerClient) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	ctx, otSpan := t.tracer.Tracer(instrumentationName).Start(ctx, name)
	return ctx, &spanImpl{span: otSpan}
}

// GetCarrier returns the W3C trace context headers of ctx ("traceparent",
// "tracestate", "baggage") for propagation across service boundaries.
func (t *TracerClient) GetCarrier(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	propagator().Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext continues the trace described by carrier in ctx.
func (t *TracerClient) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	return propagator().Extract(ctx, propagation.MapCarrier(carrier))
}
