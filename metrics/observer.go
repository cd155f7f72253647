package metrics

import (
	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Label values used when an operation carries no error.
const (
	noKind  = "none"
	noClass = "none"
)

// ErrorObserver turns odbcerr operation notifications into Prometheus
// metrics. All metric names are prefixed with the namespace:
//
//   - <ns>_operations_total{component,operation,kind,sqlstate_class}
//   - <ns>_operation_duration_seconds{component,operation}
//   - <ns>_diagnostic_records{component,operation}
//   - <ns>_sqlstate_probes_total{sqlstate,result}
//   - <ns>_last_error_timestamp_seconds{kind}
//
// It implements observability.Observer and is safe for concurrent use.
type ErrorObserver struct {
	operations Counter
	duration   Histogram
	records    Histogram
	probes     Counter
	lastError  Gauge
}

// NewErrorObserver creates the error metrics on collector. An empty
// namespace means DefaultNamespace.
func NewErrorObserver(collector MetricsCollector, namespace string) *ErrorObserver {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &ErrorObserver{
		operations: collector.CreateCounter(
			namespace+"_operations_total",
			"Operations observed by component, operation, error kind and SQLSTATE class.",
			[]string{"component", "operation", "kind", "sqlstate_class"},
		),
		duration: collector.CreateHistogram(
			namespace+"_operation_duration_seconds",
			"Time spent constructing, translating or probing errors.",
			[]string{"component", "operation"},
			prometheus.ExponentialBuckets(0.00001, 4, 8),
		),
		records: collector.CreateHistogram(
			namespace+"_diagnostic_records",
			"Diagnostic records merged per operation.",
			[]string{"component", "operation"},
			[]float64{0, 1, 2, 4, 8, 16, 32},
		),
		probes: collector.CreateCounter(
			namespace+"_sqlstate_probes_total",
			"Statement SQLSTATE probes by probed state and result.",
			[]string{"sqlstate", "result"},
		),
		lastError: collector.CreateGauge(
			namespace+"_last_error_timestamp_seconds",
			"Unix time of the last error constructed per kind.",
			[]string{"kind"},
		),
	}
}

// ObserveOperation implements observability.Observer.
func (o *ErrorObserver) ObserveOperation(ctx observability.OperationContext) {
	if o == nil {
		return
	}
	kind, class := noKind, noClass
	if ctx.Error != nil {
		if k, ok := ctx.Metadata["kind"].(string); ok && k != "" {
			kind = k
		}
		if state, ok := ctx.Metadata["sqlstate"].(string); ok && len(state) >= 2 {
			class = state[:2]
		}
	}

	o.operations.WithLabelValues(ctx.Component, ctx.Operation, kind, class).Inc()
	o.duration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
	o.records.WithLabelValues(ctx.Component, ctx.Operation).Observe(float64(ctx.Size))

	if matched, ok := ctx.Metadata["matched"].(bool); ok {
		result := "miss"
		if matched {
			result = "match"
		}
		o.probes.WithLabelValues(ctx.Resource, result).Inc()
	}
	if ctx.Error != nil {
		o.lastError.WithLabelValues(kind).SetToCurrentTime()
	}
}
