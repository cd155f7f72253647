// Package logger provides structured logging for odbcerr services on top of
// Uber's zap.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: Defines the contract for logging operations
//   - LoggerClient struct: Concrete implementation of the Logger interface
//   - NewLoggerClient constructor: Returns *LoggerClient (concrete type)
//   - FXModule: Provides *LoggerClient, Logger and sqlerr.Logger for dependency injection
//
// Core Features:
//   - JSON output with ISO8601 timestamps, directed to stderr
//   - Context-aware logging with OpenTelemetry trace and span IDs
//   - Classified database errors logged with sqlstate, error_kind and
//     native_code fields
//
// # Direct Usage (Without FX)
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "orders",
//	})
//
//	if err := repo.Save(ctx, order); err != nil {
//		// err is a *sqlerr.Error: the entry carries sqlstate=23505,
//		// error_kind=IntegrityError and native_code when the driver set one
//		log.ErrorWithContext(ctx, "save order failed", err, map[string]interface{}{
//			"order_id": order.ID,
//		})
//	}
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		sqlerr.FXModule, // picks up the sqlerr.Logger provided above
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Info, ServiceName: "orders"}
//		}),
//	)
//	app.Run()
//
// # Logging Levels
//
//	logger.Debug   // "debug"
//	logger.Info    // "info"
//	logger.Warning // "warning"
//	logger.Error   // "error"
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # Log level (debug, info, warning, error)
//	LOGGER_ENABLE_TRACING=true      # Enable distributed tracing integration
//	LOGGER_CALLER_SKIP=1            # Number of stack frames to skip for caller reporting
//
// # Thread Safety
//
// All methods on the Logger interface are safe for concurrent use by multiple
// goroutines.
package logger
