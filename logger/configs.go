package logger

// Log levels accepted by Config.Level.
const (
	// Debug logs everything, including per-construction diagnostics.
	Debug = "debug"

	// Info is the default level.
	Info = "info"

	// Warning logs warnings and errors only.
	Warning = "warning"

	// Error logs errors only.
	Error = "error"
)

// Config defines the configuration structure for the logger.
type Config struct {
	// Level is the minimum level written: "debug", "info", "warning" or
	// "error". Unknown values fall back to "info".
	//
	// This setting can be configured via:
	//   - YAML configuration with the "level" key
	//   - Environment variable ZAP_LOGGER_LEVEL
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// EnableTracing adds "trace_id" and "span_id" from the active
	// OpenTelemetry span to entries written with the ...WithContext methods.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`

	// ServiceName populates the "service" field of every entry.
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`

	// CallerSkip is the number of wrapper frames between the reported caller
	// and zap. Zero or negative means 1, right for direct use.
	CallerSkip int `yaml:"caller_skip" envconfig:"LOGGER_CALLER_SKIP"`

	// Encoding is "json" (default) or "console".
	Encoding string `yaml:"encoding" envconfig:"LOGGER_ENCODING"`

	// Outputs lists zap sink URLs or file paths. Default: stderr.
	Outputs []string `yaml:"outputs" envconfig:"LOGGER_OUTPUTS"`
}
