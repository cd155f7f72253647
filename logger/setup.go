package logger

import (
	"errors"
	"log"
	"os"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient is a wrapper around Uber's Zap logger.
//
// LoggerClient implements the Logger interface. Errors carrying a SQLSTATE
// are expanded into sqlstate, error_kind and native_code fields.
type LoggerClient struct {
	// Zap is the underlying zap.Logger, exposed for zap-specific needs.
	Zap *zap.Logger

	// tracingEnabled adds trace/span IDs to entries written with a context.
	tracingEnabled bool
}

// NewLoggerClient builds a JSON logger writing to cfg.Outputs (stderr by
// default), with ISO8601 timestamps, caller information and the process ID
// and service name as initial fields.
//
// An invalid configuration (unknown encoding, unwritable output) terminates
// the application with log.Fatal.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "orders",
//	})
//	factory := sqlerr.NewFactory(sqlerr.Config{}, driver).WithLogger(log)
func NewLoggerClient(cfg Config) *LoggerClient {
	client, err := newLoggerClient(cfg)
	if err != nil {
		log.Fatal(err)
	}
	return client
}

func newLoggerClient(cfg Config) (*LoggerClient, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeCaller = zapcore.FullCallerEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = "json"
	}
	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel(cfg.Level)),
		Encoding:         encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	callerSkip := cfg.CallerSkip
	if callerSkip <= 0 {
		callerSkip = 1
	}

	// +1 for LoggerClient.write, which every logging method goes through.
	zl, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(callerSkip+1))
	if err != nil {
		return nil, err
	}
	return &LoggerClient{
		Zap:            zl,
		tracingEnabled: cfg.EnableTracing,
	}, nil
}

func zapLevel(level string) zapcore.Level {
	switch level {
	case Debug:
		return zap.DebugLevel
	case Warning:
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// Sync flushes buffered entries. Terminals and pipes cannot be synced;
// the EINVAL or ENOTTY they return is not reported.
func (l *LoggerClient) Sync() error {
	err := l.Zap.Sync()
	if errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return err
}
