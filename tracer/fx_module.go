package tracer

import (
	"context"

	"github.com/aalemi-dev/odbcerr/logger"
	"go.uber.org/fx"
)

// FXModule configures distributed tracing.
//
// The module provides:
// 1. *TracerClient (concrete type) for direct use
// 2. Tracer interface for dependency injection
// 3. *SpanObserver for recording odbcerr operations as spans
// 4. Shutdown hooks flushing pending spans
//
// Usage:
//
//	app := fx.New(
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config { return tracer.Config{ServiceName: "orders"} }),
//	)
//	app.Run()
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
		fx.Annotate(
			func(t *TracerClient) Tracer { return t },
			fx.As(new(Tracer)),
		),
		NewSpanObserver,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerLifeCycleParams groups the dependencies for tracer lifecycle management.
type TracerLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Tracer    *TracerClient
	Logger    logger.Logger `optional:"true"`
}

// RegisterTracerLifecycle shuts the tracer provider down on stop, flushing
// any spans still queued for export.
func RegisterTracerLifecycle(params TracerLifeCycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.Info("Shutting down tracer", nil)
			}
			if params.Tracer == nil || params.Tracer.tracer == nil {
				return nil
			}
			return params.Tracer.tracer.Shutdown(ctx)
		},
	})
}
