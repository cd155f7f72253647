package kafka

import (
	"context"
	"time"
)

// Config defines the configuration of the error event publisher.
type Config struct {
	// Brokers is a list of Kafka broker addresses
	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`

	// Topic receives one message per classified error
	Topic string `yaml:"topic" envconfig:"KAFKA_TOPIC"`

	// Service is stamped on every event so several applications can share a topic
	Service string `yaml:"service" envconfig:"SERVICE_NAME"`

	// Operations limits publishing to the listed observer operations
	// (e.g. "translate"). Empty publishes every operation that produced an error.
	Operations []string `yaml:"operations" envconfig:"KAFKA_OPERATIONS"`

	// RequiredAcks determines how many replica acknowledgments to wait for
	// Options:
	//   RequireOne (1): Wait for leader only
	//   RequireAll (-1): Wait for all in-sync replicas
	// Default: RequireAll (-1). Zero selects the default.
	RequiredAcks int `yaml:"required_acks" envconfig:"KAFKA_REQUIRED_ACKS"`

	// WriteTimeout is the timeout for write operations
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"KAFKA_WRITE_TIMEOUT"`

	// BatchSize is the maximum number of events sent in one write
	// Default: 100
	BatchSize int `yaml:"batch_size" envconfig:"KAFKA_BATCH_SIZE"`

	// BatchTimeout is how long the publisher waits to fill a batch
	// Default: 1s
	BatchTimeout time.Duration `yaml:"batch_timeout" envconfig:"KAFKA_BATCH_TIMEOUT"`

	// BufferSize is the capacity of the in-memory queue. Events observed while
	// the queue is full are dropped and counted.
	// Default: 1024
	BufferSize int `yaml:"buffer_size" envconfig:"KAFKA_BUFFER_SIZE"`

	// MaxAttempts is the maximum number of attempts to deliver a message
	// Default: 10
	MaxAttempts int `yaml:"max_attempts" envconfig:"KAFKA_MAX_ATTEMPTS"`

	// CompressionCodec specifies the compression algorithm to use
	// Options: "gzip", "snappy", "lz4", "zstd", "" (none)
	CompressionCodec string `yaml:"compression_codec" envconfig:"KAFKA_COMPRESSION_CODEC"`

	// TLS contains TLS/SSL configuration
	TLS TLSConfig `yaml:"tls"`

	// SASL contains SASL authentication configuration
	SASL SASLConfig `yaml:"sasl"`
}

// TLSConfig contains TLS/SSL configuration parameters.
type TLSConfig struct {
	// Enabled determines whether to use TLS/SSL for the connection
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_TLS_ENABLED"`

	// CACertPath is the file path to the CA certificate for verifying the broker
	CACertPath string `yaml:"ca_cert_path" envconfig:"KAFKA_TLS_CA_CERT_PATH"`

	// ClientCertPath is the file path to the client certificate
	ClientCertPath string `yaml:"client_cert_path" envconfig:"KAFKA_TLS_CLIENT_CERT_PATH"`

	// ClientKeyPath is the file path to the client certificate's private key
	ClientKeyPath string `yaml:"client_key_path" envconfig:"KAFKA_TLS_CLIENT_KEY_PATH"`

	// InsecureSkipVerify controls whether to skip verification of the server's certificate
	// WARNING: Setting this to true is insecure and should only be used in testing
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" envconfig:"KAFKA_TLS_INSECURE_SKIP_VERIFY"`
}

// SASLConfig contains SASL authentication configuration parameters.
type SASLConfig struct {
	// Enabled determines whether to use SASL authentication
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_SASL_ENABLED"`

	// Mechanism specifies the SASL mechanism to use
	// Options: "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512"
	Mechanism string `yaml:"mechanism" envconfig:"KAFKA_SASL_MECHANISM"`

	// Username for SASL authentication
	Username string `yaml:"username" envconfig:"KAFKA_SASL_USERNAME"`

	// Password for SASL authentication
	Password string `yaml:"password" envconfig:"KAFKA_SASL_PASSWORD"`
}

// Logger is an interface that matches the logger.Logger interface.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	// DefaultRequiredAcks waits for all in-sync replicas
	DefaultRequiredAcks = -1

	// DefaultWriteTimeout is the default timeout for write operations
	DefaultWriteTimeout = 10 * time.Second

	// DefaultBatchSize is the default number of events per write
	DefaultBatchSize = 100

	// DefaultBatchTimeout is the default time to wait for a batch to fill
	DefaultBatchTimeout = 1 * time.Second

	// DefaultBufferSize is the default queue capacity
	DefaultBufferSize = 1024

	// DefaultMaxAttempts is the default number of delivery attempts
	DefaultMaxAttempts = 10
)

// applyDefaults fills unset numeric fields.
func applyDefaults(cfg Config) Config {
	if cfg.RequiredAcks == 0 {
		cfg.RequiredAcks = DefaultRequiredAcks
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = DefaultBatchTimeout
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	return cfg
}
