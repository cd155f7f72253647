// Package tracer provides OpenTelemetry tracing with first-class support for
// classified database errors.
//
// Span.RecordError adds the classification of a *sqlerr.Error anywhere in
// the error tree as span attributes:
//
//	db.sqlstate     "23505"
//	db.error.kind   "IntegrityError"
//	db.native_code  1062 (when the driver reported one)
//	db.function     "SQLExecDirect" (for errors read from handles)
//
// SpanObserver implements observability.Observer and records each error
// construction, translation and SQLSTATE probe as a span of its own:
//
//	client, _ := tracer.NewClient(tracer.Config{ServiceName: "orders"})
//	translator := mariadb.NewTranslator(sqlerr.Config{}).
//	    WithObserver(observability.Multi{tracer.NewSpanObserver(client), metricsObserver})
//
// Trace context crosses service boundaries through GetCarrier and
// SetCarrierOnContext, which use the W3C trace context and baggage formats.
package tracer
