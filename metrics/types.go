package metrics

// Vec is a metric family partitioned by label values. Call WithLabelValues
// with no arguments for a family declared without labels.
type Vec[M any] interface {
	WithLabelValues(lvs ...string) M
}

// CounterValue is one counter series.
type CounterValue interface {
	Inc()
	Add(val float64)
}

// GaugeValue is one gauge series.
type GaugeValue interface {
	Set(val float64)
	SetToCurrentTime()
}

// Observer is one histogram series.
type Observer interface {
	Observe(val float64)
}

// Metric families returned by MetricsCollector.
type (
	Counter   = Vec[CounterValue]
	Gauge     = Vec[GaugeValue]
	Histogram = Vec[Observer]
)

// family adapts a Prometheus *Vec lookup to Vec.
type family[M any] func(lvs ...string) M

func (f family[M]) WithLabelValues(lvs ...string) M {
	return f(lvs...)
}
