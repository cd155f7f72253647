package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/aalemi-dev/odbcerr/pkg/gormerr"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PluginName is the name the translation plugin is registered under.
const PluginName = "odbcerr:postgres"

// Postgres is a gorm connection whose errors come back classified: every
// failed create, query, update, delete, row or raw call returns a
// *sqlerr.Error that wraps the driver error.
type Postgres struct {
	cfg        Config
	client     *gorm.DB
	translator *Translator
	logger     Logger
}

// NewPostgres opens the database described by cfg and installs the
// translation plugin.
//
// Returns *Postgres concrete type (following Go best practice: "accept interfaces, return structs").
func NewPostgres(cfg Config, translator *Translator) (*Postgres, error) {
	if translator == nil {
		translator = NewTranslator(cfg.Diagnostics)
	}
	conn, err := connectToPostgres(cfg, translator)
	if err != nil {
		return nil, err
	}
	return &Postgres{cfg: cfg, client: conn, translator: translator}, nil
}

// connectionString builds the key/value DSN understood by pgx.
func connectionString(c Connection) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DbName, c.SSLMode)
}

func connectToPostgres(postgresConfig Config, translator *Translator) (*gorm.DB, error) {
	database, err := gorm.Open(
		postgres.Open(connectionString(postgresConfig.Connection)),
		&gorm.Config{
			// gorm's own translation replaces *pgconn.PgError with sentinels
			// and loses the SQLSTATE; the plugin translates instead.
			TranslateError: false,
		})
	if err != nil {
		return nil, translator.TranslateError("SQLDriverConnect", err)
	}

	if err := database.Use(gormerr.NewPlugin(PluginName, translator.TranslateError)); err != nil {
		return nil, fmt.Errorf("failed to install error translation plugin: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgreSQL database instance: %w", err)
	}

	maxOpen := postgresConfig.ConnectionDetails.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = 50
	}
	maxIdle := postgresConfig.ConnectionDetails.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 25
	}
	maxLifetime := postgresConfig.ConnectionDetails.ConnMaxLifetime
	if maxLifetime == 0 {
		maxLifetime = 1 * time.Minute
	}

	databaseInstance.SetMaxOpenConns(maxOpen)
	databaseInstance.SetMaxIdleConns(maxIdle)
	databaseInstance.SetConnMaxLifetime(maxLifetime)

	return database, nil
}

// Ping verifies the connection. Failures are classified like any statement
// error, e.g. 08001 when the server cannot be reached.
func (p *Postgres) Ping(ctx context.Context) error {
	sqlDB, err := p.client.DB()
	if err != nil {
		return p.translator.TranslateError("SQLConnect", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.translator.TranslateError("SQLConnect", sqlDB.PingContext(ctx))
}

// WithObserver attaches an observer notified about every translation.
func (p *Postgres) WithObserver(observer observability.Observer) *Postgres {
	p.translator.WithObserver(observer)
	return p
}

// WithLogger attaches a logger for lifecycle events and unclassifiable errors.
func (p *Postgres) WithLogger(logger Logger) *Postgres {
	p.logger = logger
	p.translator.WithLogger(logger)
	return p
}

// GracefulShutdown closes the connection pool.
func (p *Postgres) GracefulShutdown() error {
	if p.client == nil {
		return nil
	}
	sqlDB, err := p.client.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	p.logInfo(context.Background(), "PostgreSQL connection closed", nil)
	return nil
}

func (p *Postgres) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}
