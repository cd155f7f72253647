package metrics

// Default addresses for metrics servers if none is specified.
const (
	DefaultSystemMetricsAddress      = ":9090"
	DefaultApplicationMetricsAddress = ":9091"
)

// DefaultNamespace prefixes every error metric name unless Config.Namespace is set.
const DefaultNamespace = "odbcerr"

// Config defines the configuration for the Prometheus metrics servers.
//
// The package exposes two endpoints:
// 1. System metrics (default :9090): Go runtime, process and build info
// 2. Application metrics (default :9091): error construction and translation metrics
type Config struct {
	// SystemMetricsAddress is where the system metrics server listens.
	// nil means ":9090"; an empty string disables the endpoint:
	//   SystemMetricsAddress: metrics.Ptr(""),
	//
	// This setting can be configured via:
	//   - YAML configuration with the "system_metrics_address" key
	//   - Environment variable METRICS_SYSTEM_ADDRESS
	SystemMetricsAddress *string `yaml:"system_metrics_address" envconfig:"METRICS_SYSTEM_ADDRESS"`

	// ApplicationMetricsAddress is where the application metrics server
	// listens. nil means ":9091"; an empty string disables the endpoint.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "application_metrics_address" key
	//   - Environment variable METRICS_APPLICATION_ADDRESS
	ApplicationMetricsAddress *string `yaml:"application_metrics_address" envconfig:"METRICS_APPLICATION_ADDRESS"`

	// ServiceName is added as a constant "service" label to every metric.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "service_name" key
	//   - Environment variable METRICS_SERVICE_NAME
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`

	// Namespace prefixes the error metric names. Default: "odbcerr"
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE"`
}

// Ptr returns a pointer to the given string value.
// Helper function for disabling endpoints in configuration.
func Ptr(s string) *string {
	return &s
}

func addressOrDefault(addr *string, def string) string {
	if addr == nil {
		return def
	}
	return *addr
}
