package mariadb

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/aalemi-dev/odbcerr/pkg/gormerr"
	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// PluginName is the name the translation plugin is registered under.
const PluginName = "odbcerr:mariadb"

// MariaDB is a gorm connection whose errors come back classified: every
// failed create, query, update, delete, row or raw call returns a
// *sqlerr.Error that wraps the driver error.
type MariaDB struct {
	cfg        Config
	client     *gorm.DB
	translator *Translator
	logger     Logger
}

// NewMariaDB opens the database described by cfg and installs the
// translation plugin.
//
// Returns *MariaDB concrete type (following Go best practice: "accept interfaces, return structs").
func NewMariaDB(cfg Config, translator *Translator) (*MariaDB, error) {
	if translator == nil {
		translator = NewTranslator(cfg.Diagnostics)
	}
	dsn, err := connectionString(cfg.Connection)
	if err != nil {
		return nil, err
	}
	conn, err := connectToMariaDB(cfg, dsn, translator)
	if err != nil {
		return nil, err
	}
	return &MariaDB{cfg: cfg, client: conn, translator: translator}, nil
}

// connectionString builds the driver DSN. Charset defaults to utf8mb4 and the
// location to Local.
func connectionString(c Connection) (string, error) {
	dsn := mysql.NewConfig()
	dsn.User = c.User
	dsn.Passwd = c.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.Host, c.Port)
	dsn.DBName = c.DbName
	dsn.ParseTime = c.ParseTime
	dsn.TLSConfig = c.TLS
	dsn.Timeout = c.Timeout
	dsn.ReadTimeout = c.ReadTimeout
	dsn.WriteTimeout = c.WriteTimeout

	charset := c.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn.Params = map[string]string{"charset": charset}

	locName := c.Loc
	if locName == "" {
		locName = "Local"
	}
	loc, err := time.LoadLocation(locName)
	if err != nil {
		return "", fmt.Errorf("invalid MariaDB location %q: %w", locName, err)
	}
	dsn.Loc = loc

	return dsn.FormatDSN(), nil
}

func connectToMariaDB(mariadbConfig Config, dsn string, translator *Translator) (*gorm.DB, error) {
	database, err := gorm.Open(
		gormmysql.Open(dsn),
		&gorm.Config{
			// gorm's own translation replaces *mysql.MySQLError with
			// sentinels and loses the error number; the plugin translates instead.
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
		return nil, fmt.Errorf("failed to get MariaDB/MySQL database instance: %w", err)
	}

	maxOpenConns := mariadbConfig.ConnectionDetails.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 50
	}
	maxIdleConns := mariadbConfig.ConnectionDetails.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 25
	}
	connMaxLifetime := mariadbConfig.ConnectionDetails.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 1 * time.Minute
	}

	databaseInstance.SetMaxOpenConns(maxOpenConns)
	databaseInstance.SetMaxIdleConns(maxIdleConns)
	databaseInstance.SetConnMaxLifetime(connMaxLifetime)

	return database, nil
}

// Ping verifies the connection. Failures are classified like any statement
// error, e.g. 08S01 when the server went away.
func (m *MariaDB) Ping(ctx context.Context) error {
	sqlDB, err := m.client.DB()
	if err != nil {
		return m.translator.TranslateError("SQLConnect", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.translator.TranslateError("SQLConnect", sqlDB.PingContext(ctx))
}

// WithObserver attaches an observer notified about every translation.
func (m *MariaDB) WithObserver(observer observability.Observer) *MariaDB {
	m.translator.WithObserver(observer)
	return m
}

// WithLogger attaches a logger for lifecycle events and unclassifiable errors.
func (m *MariaDB) WithLogger(logger Logger) *MariaDB {
	m.logger = logger
	m.translator.WithLogger(logger)
	return m
}

// GracefulShutdown closes the connection pool.
func (m *MariaDB) GracefulShutdown() error {
	if m.client == nil {
		return nil
	}
	sqlDB, err := m.client.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	m.logInfo(context.Background(), "MariaDB connection closed", nil)
	return nil
}

func (m *MariaDB) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}
