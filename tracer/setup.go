package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// instrumentationName names the tracer spans are created with.
const instrumentationName = "github.com/aalemi-dev/odbcerr"

// TracerClient creates spans and records classified database errors on them.
// It wraps an OpenTelemetry TracerProvider and is safe for concurrent use.
// It implements the Tracer interface.
type TracerClient struct {
	tracer *trace.TracerProvider
}

// NewClient sets up a TracerProvider for cfg and installs it, together with
// the W3C trace context and baggage propagators, as the global default.
//
// Example:
//
//	tracerClient, err := tracer.NewClient(tracer.Config{ServiceName: "orders", AppEnv: "production", EnableExport: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctx, span := tracerClient.StartSpan(ctx, "save-order")
//	defer span.End()
func NewClient(cfg Config) (*TracerClient, error) {
	return newClient(cfg)
}

func newClient(cfg Config, extra ...trace.TracerProviderOption) (*TracerClient, error) {
	options := []trace.TracerProviderOption{trace.WithSampler(cfg.sampler())}

	if cfg.EnableExport {
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient(cfg.exporterOptions()...))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OTLP exporter: %w", err)
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))
	options = append(options, extra...)

	tp := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator())

	return &TracerClient{tracer: tp}, nil
}

func propagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
}
