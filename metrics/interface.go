package metrics

// MetricsCollector creates application metrics. It is implemented by *Metrics
// and exposes no Prometheus types.
type MetricsCollector interface {
	// CreateCounter creates and registers a counter.
	CreateCounter(name, help string, labels []string) Counter

	// CreateHistogram creates and registers a histogram.
	CreateHistogram(name, help string, labels []string, buckets []float64) Histogram

	// CreateGauge creates and registers a gauge.
	CreateGauge(name, help string, labels []string) Gauge
}
