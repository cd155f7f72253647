package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CreateCounter creates a counter and registers it to the application registry.
//
// Example:
//
//	counter := m.CreateCounter("odbcerr_retries_total", "Retried statements", []string{"sqlstate"})
//	counter.WithLabelValues("40001").Inc()
func (m *Metrics) CreateCounter(name, help string, labels []string) Counter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, labels)
	m.register(vec)
	return family[CounterValue](func(lvs ...string) CounterValue { return vec.WithLabelValues(lvs...) })
}

// CreateHistogram creates a histogram and registers it to the application
// registry. nil buckets means prometheus.DefBuckets.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) Histogram {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: name, Help: help, Buckets: buckets}, labels)
	m.register(vec)
	return family[Observer](func(lvs ...string) Observer { return vec.WithLabelValues(lvs...) })
}

// CreateGauge creates a gauge and registers it to the application registry.
func (m *Metrics) CreateGauge(name, help string, labels []string) Gauge {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	m.register(vec)
	return family[GaugeValue](func(lvs ...string) GaugeValue { return vec.WithLabelValues(lvs...) })
}
