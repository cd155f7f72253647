package tracer

import (
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Config defines the configuration for the OpenTelemetry tracer.
type Config struct {
	// ServiceName identifies the service in exported traces.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "service_name" key
	//   - Environment variable TRACER_SERVICE_NAME
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is the deployment environment ("development", "production").
	// It sets the "deployment.environment" and "environment" resource attributes.
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport sends spans to an OTLP HTTP collector, configured through
	// the standard OTEL_EXPORTER_OTLP_* environment variables. When false,
	// spans are recorded but never leave the process.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint overrides the collector host:port when exporting.
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`

	// Insecure exports over plain HTTP.
	Insecure bool `yaml:"insecure" envconfig:"TRACER_INSECURE"`

	// SampleRatio is the fraction of root traces sampled, in (0, 1].
	// Zero samples everything. Child spans follow their parent's decision.
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"TRACER_SAMPLE_RATIO"`
}

// exporterOptions turns the export settings into otlptracehttp options.
func (c Config) exporterOptions() []otlptracehttp.Option {
	var opts []otlptracehttp.Option
	if c.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(c.Endpoint))
	}
	if c.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// sampler samples SampleRatio of root spans.
func (c Config) sampler() trace.Sampler {
	if c.SampleRatio <= 0 || c.SampleRatio >= 1 {
		return trace.ParentBased(trace.AlwaysSample())
	}
	return trace.ParentBased(trace.TraceIDRatioBased(c.SampleRatio))
}
