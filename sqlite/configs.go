package sqlite

import (
	"context"
	"time"

	"github.com/aalemi-dev/odbcerr/sqlerr"
)

// Config configures the SQLite adapter.
type Config struct {
	// Path is the database file. Default: ":memory:"
	//
	// This setting can be configured via:
	//   - YAML configuration with the "path" key
	//   - Environment variable SQLITE_PATH
	Path string `yaml:"path" envconfig:"SQLITE_PATH"`

	// BusyTimeout makes SQLite retry locked operations for up to this long
	// before failing with SQLITE_BUSY (HYT00). Zero disables retrying.
	BusyTimeout time.Duration `yaml:"busy_timeout" envconfig:"SQLITE_BUSY_TIMEOUT"`

	// ForeignKeys enables foreign key enforcement.
	ForeignKeys bool `yaml:"foreign_keys" envconfig:"SQLITE_FOREIGN_KEYS"`

	// Diagnostics controls how driver errors are composed into messages.
	Diagnostics sqlerr.Config `yaml:"diagnostics"`
}

// Logger is an interface that matches the logger.Logger interface.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
