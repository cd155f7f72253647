package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds two Prometheus registries, each served on its own endpoint:
// 1. System metrics (Go runtime, process, build info) on SystemServer
// 2. Application metrics (error constructions and translations) on ApplicationServer
//
// A disabled endpoint leaves its server and registry nil. Metrics created
// while the application endpoint is disabled are registered nowhere.
type Metrics struct {
	// SystemServer serves /metrics for SystemRegistry.
	SystemServer *http.Server

	// ApplicationServer serves /metrics for ApplicationRegistry.
	ApplicationServer *http.Server

	// SystemRegistry holds the Go runtime, process and build info collectors.
	SystemRegistry *prometheus.Registry

	// ApplicationRegistry holds every metric created via CreateCounter,
	// CreateHistogram and CreateGauge.
	ApplicationRegistry *prometheus.Registry

	// wrappedApplicationRegisterer adds the service label to application metrics.
	wrappedApplicationRegisterer prometheus.Registerer
}

// NewMetrics sets up the registries and HTTP servers described by cfg. The
// servers are not started; RegisterMetricsLifecycle does that under fx.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "orders"})
//	go m.ApplicationServer.ListenAndServe()
//	f := sqlerr.NewFactory(sqlerr.Config{}, driver).WithObserver(metrics.NewErrorObserver(m, ""))
func NewMetrics(cfg Config) *Metrics {
	m := &Metrics{}
	labels := prometheus.Labels{"service": cfg.ServiceName}

	if addr := addressOrDefault(cfg.SystemMetricsAddress, DefaultSystemMetricsAddress); addr != "" {
		registry := prometheus.NewRegistry()
		prometheus.WrapRegistererWith(labels, registry).MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
		m.SystemRegistry = registry
		m.SystemServer = newServer(addr, registry)
	}

	if addr := addressOrDefault(cfg.ApplicationMetricsAddress, DefaultApplicationMetricsAddress); addr != "" {
		registry := prometheus.NewRegistry()
		m.ApplicationRegistry = registry
		m.wrappedApplicationRegisterer = prometheus.WrapRegistererWith(labels, registry)
		m.ApplicationServer = newServer(addr, registry)
	}

	return m
}

func newServer(addr string, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:    addr,
		Handler: mux,
	}
}

// register adds c to the application registry when the endpoint is enabled.
func (m *Metrics) register(c prometheus.Collector) {
	if m.wrappedApplicationRegisterer != nil {
		m.wrappedApplicationRegisterer.MustRegister(c)
	}
}
