package tracer

import (
	"context"
	"time"

	"github.com/aalemi-dev/odbcerr/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	traceSpan "go.opentelemetry.io/otel/trace"
)

// SpanObserver records every odbcerr operation as a span named
// "<component>.<operation>", backdated by the operation's duration. Spans
// of operations that produced an error carry its classification and an
// Error status.
//
// Combine it with other observers through observability.Multi.
type SpanObserver struct {
	tracer traceSpan.Tracer
}

// NewSpanObserver returns an observer creating spans on client's provider.
func NewSpanObserver(client *TracerClient) *SpanObserver {
	return &SpanObserver{tracer: client.tracer.Tracer(instrumentationName)}
}

// ObserveOperation implements observability.Observer.
func (o *SpanObserver) ObserveOperation(ctx observability.OperationContext) {
	if o == nil || o.tracer == nil {
		return
	}
	end := time.Now()
	attrs := []attribute.KeyValue{
		attribute.String("odbcerr.component", ctx.Component),
		attribute.String("odbcerr.operation", ctx.Operation),
		attribute.Int64("odbcerr.records", ctx.Size),
	}
	if ctx.Resource != "" {
		attrs = append(attrs, attribute.String("odbcerr.resource", ctx.Resource))
	}
	if ctx.SubResource != "" {
		attrs = append(attrs, attribute.String("odbcerr.sub_resource", ctx.SubResource))
	}

	_, span := o.tracer.Start(context.Background(), ctx.Component+"."+ctx.Operation,
		traceSpan.WithTimestamp(end.Add(-ctx.Duration)),
		traceSpan.WithAttributes(attrs...),
	)
	if ctx.Error != nil {
		span.SetAttributes(ErrorAttributes(ctx.Error)...)
		span.SetStatus(codes.Error, ctx.Error.Error())
	}
	span.End(traceSpan.WithTimestamp(end))
}
