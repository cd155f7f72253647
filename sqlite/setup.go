package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/aalemi-dev/odbcerr/observability"
)

// driverName is the database/sql name modernc.org/sqlite registers.
const driverName = "sqlite"

// SQLite is a database/sql handle whose errors come back classified.
type SQLite struct {
	cfg        Config
	db         *sql.DB
	translator *Translator
	logger     Logger
}

// NewSQLite opens the database described by cfg.
//
// Returns *SQLite concrete type (following Go best practice: "accept interfaces, return structs").
func NewSQLite(cfg Config, translator *Translator) (*SQLite, error) {
	if translator == nil {
		translator = NewTranslator(cfg.Diagnostics)
	}
	dsn := connectionString(cfg)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, translator.TranslateError("SQLDriverConnect", err)
	}
	if cfg.Path == "" || cfg.Path == ":memory:" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, translator.TranslateError("SQLDriverConnect", err)
	}
	return &SQLite{cfg: cfg, db: db, translator: translator}, nil
}

// connectionString appends the configured pragmas to the path.
func connectionString(cfg Config) string {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	q := url.Values{}
	if cfg.BusyTimeout > 0 {
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeout.Milliseconds()))
	}
	if cfg.ForeignKeys {
		q.Add("_pragma", "foreign_keys(1)")
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// ExecContext runs a statement; its error is classified as SQLExecDirect.
func (s *SQLite) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, s.translator.TranslateError("SQLExecDirect", err)
	}
	return res, nil
}

// QueryContext runs a query; its error is classified as SQLExecDirect.
func (s *SQLite) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.translator.TranslateError("SQLExecDirect", err)
	}
	return rows, nil
}

// QueryRowContext runs a single-row query and scans it into dest. Errors,
// sql.ErrNoRows included (02000), are classified as SQLFetch.
func (s *SQLite) QueryRowContext(ctx context.Context, query string, args []any, dest ...any) error {
	return s.translator.TranslateError("SQLFetch", s.db.QueryRowContext(ctx, query, args...).Scan(dest...))
}

// DB returns the underlying database handle. Its errors are not translated.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Translator returns the translator used by the handle.
func (s *SQLite) Translator() *Translator {
	return s.translator
}

// WithObserver attaches an observer notified about every translation.
func (s *SQLite) WithObserver(observer observability.Observer) *SQLite {
	s.translator.WithObserver(observer)
	return s
}

// WithLogger attaches a logger for lifecycle events and unclassifiable errors.
func (s *SQLite) WithLogger(logger Logger) *SQLite {
	s.logger = logger
	s.translator.WithLogger(logger)
	return s
}

// Close closes the database.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.InfoWithContext(context.Background(), "SQLite database closed", nil, map[string]interface{}{
			"path": s.cfg.Path,
		})
	}
	return nil
}
