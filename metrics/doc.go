// Package metrics exposes odbcerr activity as Prometheus metrics.
//
// NewMetrics sets up two registries, each served on its own /metrics
// endpoint: system metrics (Go runtime, process, build info) on :9090 and
// application metrics on :9091. ErrorObserver implements
// observability.Observer and counts error constructions, driver error
// translations and SQLSTATE probes on the application registry:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "orders"})
//	obs := metrics.NewErrorObserver(m, "")
//	translator := postgres.NewTranslator(sqlerr.Config{}).WithObserver(obs)
//
// Useful queries:
//
//	sum by (kind) (rate(odbcerr_operations_total{operation="translate"}[5m]))
//	sum by (sqlstate_class) (rate(odbcerr_operations_total{sqlstate_class="40"}[5m]))
//
// Under fx, FXModule provides the observer as observability.Observer so the
// sqlerr and driver adapter modules report to it without further wiring.
package metrics
