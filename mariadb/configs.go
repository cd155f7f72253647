package mariadb

import (
	"context"
	"time"

	"github.com/aalemi-dev/odbcerr/sqlerr"
)

// Config represents the configuration of the MariaDB/MySQL adapter.
// Diagnostics is all a Translator needs; Connection and ConnectionDetails are
// used only when the adapter opens the database itself.
type Config struct {
	// Connection contains the essential parameters needed to establish a database connection
	Connection Connection `yaml:"connection"`

	// ConnectionDetails contains configuration for the connection pool behavior
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`

	// Diagnostics controls how driver errors are composed into messages.
	Diagnostics sqlerr.Config `yaml:"diagnostics"`
}

// Connection holds the basic parameters required to connect to a MariaDB/MySQL database.
// These parameters are used to construct the database connection DSN.
type Connection struct {
	// Host specifies the database server hostname or IP address
	Host string `yaml:"host" envconfig:"MARIADB_HOST"`

	// Port specifies the TCP port on which the database server is listening
	Port string `yaml:"port" envconfig:"MARIADB_PORT"`

	// User specifies the database username for authentication
	User string `yaml:"user" envconfig:"MARIADB_USER"`

	// Password specifies the database user password for authentication
	Password string `json:"-" yaml:"password" envconfig:"MARIADB_PASSWORD"` //nolint:gosec

	// DbName specifies the name of the database to connect to
	DbName string `yaml:"dbname" envconfig:"MARIADB_DB"`

	// Charset specifies the character set to use for the connection
	// Default: "utf8mb4"
	Charset string `yaml:"charset" envconfig:"MARIADB_CHARSET"`

	// ParseTime enables parsing of DATE and DATETIME values to time.Time
	ParseTime bool `yaml:"parse_time" envconfig:"MARIADB_PARSE_TIME"`

	// Loc specifies the location for parsing timestamps, e.g. "Local" or "UTC"
	// Default: "Local"
	Loc string `yaml:"loc" envconfig:"MARIADB_LOC"`

	// TLS specifies the TLS/SSL configuration name
	// Common values: "true", "false", "skip-verify", "preferred", or a custom TLS config name
	TLS string `yaml:"tls" envconfig:"MARIADB_TLS"`

	// Timeout, ReadTimeout and WriteTimeout bound dialing and socket I/O.
	// Zero means no timeout.
	Timeout      time.Duration `yaml:"timeout" envconfig:"MARIADB_TIMEOUT"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"MARIADB_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"MARIADB_WRITE_TIMEOUT"`
}

// ConnectionDetails holds configuration settings for the database connection pool.
type ConnectionDetails struct {
	// MaxOpenConns controls the maximum number of open connections to the database.
	// If set to 0, the package default is used.
	MaxOpenConns int `yaml:"max_open_conns" envconfig:"MARIADB_MAX_OPEN_CONNS"`

	// MaxIdleConns controls the maximum number of connections in the idle connection pool.
	// If set to 0, the package default is used.
	MaxIdleConns int `yaml:"max_idle_conns" envconfig:"MARIADB_MAX_IDLE_CONNS"`

	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	// If set to 0, the package default is used.
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"MARIADB_CONN_MAX_LIFETIME"`
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
