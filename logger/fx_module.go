package logger

import (
	"context"

	"github.com/aalemi-dev/odbcerr/sqlerr"
	"go.uber.org/fx"
)

// FXModule provides the zap-backed logger to an fx application.
//
// The module provides:
//   - *LoggerClient (concrete type)
//   - Logger (interface), picked up by the metrics, tracer and kafka modules
//   - sqlerr.Logger, so the error factory logs malformed templates and
//     truncated diagnostic areas
//
// A logger.Config must be supplied. Buffered entries are flushed on stop.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
		fx.Annotate(
			func(l *LoggerClient) Logger { return l },
			fx.As(new(Logger)),
		),
		fx.Annotate(
			func(l *LoggerClient) sqlerr.Logger { return l },
			fx.As(new(sqlerr.Logger)),
		),
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle syncs the zap logger when the application stops.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Sync()
		},
	})
}
