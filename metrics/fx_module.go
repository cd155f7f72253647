package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/aalemi-dev/odbcerr/logger"
	"github.com/aalemi-dev/odbcerr/observability"
	"go.uber.org/fx"
)

// FXModule provides the Prometheus metrics servers and an error observer.
//
// The module provides:
// 1. *Metrics (concrete type) for direct use
// 2. MetricsCollector interface for custom metrics
// 3. *ErrorObserver, also as observability.Observer, which the sqlerr and
// driver adapter modules pick up
// 4. Lifecycle management for both metrics HTTP servers
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    sqlerr.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{ServiceName: "orders"}
//	    }),
//	)
//
// Dependencies required by this module:
// - A metrics.Config instance must be available in the dependency injection container
// - A logger.Logger instance is optional and used for startup/shutdown logs
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) MetricsCollector { return m },
			fx.As(new(MetricsCollector)),
		),
		NewErrorObserverWithDI,
		fx.Annotate(
			func(o *ErrorObserver) observability.Observer { return o },
			fx.As(new(observability.Observer)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// NewErrorObserverWithDI creates the error metrics using the configured namespace.
func NewErrorObserverWithDI(m *Metrics, cfg Config) *ErrorObserver {
	return NewErrorObserver(m, cfg.Namespace)
}

// MetricsLifeCycleParams groups the dependencies for metrics lifecycle management.
type MetricsLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle starts both servers in the background on start
// and shuts them down on stop.
func RegisterMetricsLifecycle(params MetricsLifeCycleParams) {
	servers := []struct {
		name   string
		server *http.Server
	}{
		{"system", params.Metrics.SystemServer},
		{"application", params.Metrics.ApplicationServer},
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, s := range servers {
				if s.server == nil {
					continue
				}
				go func() {
					logInfo(params.Logger, "Starting "+s.name+" metrics server", map[string]interface{}{
						"address": s.server.Addr,
					})
					if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logError(params.Logger, "Error starting "+s.name+" metrics server", err)
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			for _, s := range servers {
				if s.server == nil {
					continue
				}
				logInfo(params.Logger, "Shutting down "+s.name+" metrics server", nil)
				if err := s.server.Shutdown(ctx); err != nil {
					logError(params.Logger, "Error shutting down "+s.name+" metrics server", err)
				}
			}
			return nil
		},
	})
}

func logInfo(log logger.Logger, msg string, fields map[string]interface{}) {
	if log != nil {
		log.Info(msg, nil, fields)
	}
}

func logError(log logger.Logger, msg string, err error) {
	if log != nil {
		log.Error(msg, err)
	}
}
