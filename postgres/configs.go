package postgres

import (
	"context"
	"time"

	"github.com/aalemi-dev/odbcerr/sqlerr"
)

// Config represents the configuration of the PostgreSQL adapter. Diagnostics
// is all a Translator needs; Connection and ConnectionDetails are used only
// when the adapter opens the database itself.
type Config struct {
	// Connection contains the essential parameters needed to establish a database connection
	Connection Connection `yaml:"connection"`

	// ConnectionDetails contains configuration for the connection pool behavior
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`

	// Diagnostics controls how driver errors are composed into messages.
	Diagnostics sqlerr.Config `yaml:"diagnostics"`
}

// Connection holds the basic parameters required to connect to a PostgreSQL database.
// These parameters are used to construct the database connection string.
type Connection struct {
	// Host specifies the database server hostname or IP address
	Host string `yaml:"host" envconfig:"POSTGRES_HOST"`

	// Port specifies the TCP port on which the database server is listening to
	Port string `yaml:"port" envconfig:"POSTGRES_PORT"`

	// User specifies the database username for authentication
	User string `yaml:"user" envconfig:"POSTGRES_USER"`

	// Password specifies the database user password for authentication
	Password string `json:"-" yaml:"password" envconfig:"POSTGRES_PASSWORD"` //nolint:gosec

	// DbName specifies the name of the database to connect to
	DbName string `yaml:"dbname" envconfig:"POSTGRES_DB"`

	// SSLMode specifies the SSL mode for the connection (e.g., "disable", "require", "verify-ca", "verify-full")
	SSLMode string `yaml:"sslmode" envconfig:"POSTGRES_SSLMODE"`
}

// ConnectionDetails holds configuration settings for the database connection pool.
type ConnectionDetails struct {
	// MaxOpenConns controls the maximum number of open connections to the database.
	// If set to 0, the package default is used.
	MaxOpenConns int `yaml:"max_open_conns" envconfig:"POSTGRES_MAX_OPEN_CONNS"`

	// MaxIdleConns controls the maximum number of connections in the idle connection pool.
	// If set to 0, the package default is used.
	MaxIdleConns int `yaml:"max_idle_conns" envconfig:"POSTGRES_MAX_IDLE_CONNS"`

	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	// If set to 0, the package default is used.
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"POSTGRES_CONN_MAX_LIFETIME"`
}

// Logger is an interface that matches the logger.Logger interface.
// It provides context-aware structured logging with optional error and field parameters.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
