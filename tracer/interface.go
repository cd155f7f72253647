package tracer

import (
	"context"
)

// Tracer creates spans and propagates trace context.
//
// This interface is implemented by the concrete *TracerClient type.
type Tracer interface {
	// StartSpan creates a span as a child of the span in ctx, if any.
	// Always call span.End() when the operation completes.
	StartSpan(ctx context.Context, name string) (context.Context, Span)

	// GetCarrier extracts the trace context of ctx as headers.
	GetCarrier(ctx context.Context) map[string]string

	// SetCarrierOnContext continues the trace described by carrier in ctx.
	SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context
}

// Span is a traced operation.
type Span interface {
	// End completes the span and hands it to the configured exporters.
	End()

	// SetAttributes adds key-value attributes to the span.
	SetAttributes(attrs map[string]interface{})

	// RecordError marks the span as failed. Classified database errors also
	// set db.sqlstate, db.error.kind, db.native_code and db.function.
	RecordError(err error)
}
