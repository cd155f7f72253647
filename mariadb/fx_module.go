package mariadb

import (
	"context"

	"github.com/aalemi-dev/odbcerr/observability"
	"go.uber.org/fx"
)

// FXModule provides the MariaDB/MySQL error translator.
//
// This module provides:
//   - *Translator (concrete type)
//   - ErrorTranslator (interface)
//
// Dependencies:
//   - mariadb.Config (required; only Diagnostics is used)
//   - mariadb.Logger, observability.Observer (optional)
var FXModule = fx.Module("mariadb",
	fx.Provide(
		NewTranslatorWithDI,
		fx.Annotate(
			ProvideErrorTranslator,
			fx.As(new(ErrorTranslator)),
		),
	),
)

// ClientFXModule additionally opens the database described by mariadb.Config
// and closes it on stop. Use it together with FXModule.
var ClientFXModule = fx.Module("mariadb-client",
	fx.Provide(NewMariaDBClientWithDI),
	fx.Invoke(RegisterMariaDBLifecycle),
)

// ProvideErrorTranslator wraps the concrete *Translator and returns it as ErrorTranslator.
func ProvideErrorTranslator(t *Translator) ErrorTranslator {
	return t
}

// MariaDBParams groups the dependencies of the fx constructors.
type MariaDBParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewTranslatorWithDI creates a Translator from injected dependencies.
func NewTranslatorWithDI(params MariaDBParams) *Translator {
	t := NewTranslator(params.Config.Diagnostics)
	if params.Logger != nil {
		t.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		t.WithObserver(params.Observer)
	}
	return t
}

// ClientParams groups the dependencies of NewMariaDBClientWithDI.
type ClientParams struct {
	fx.In

	Config     Config
	Translator *Translator
	Logger     Logger `optional:"true"`
}

// NewMariaDBClientWithDI opens the database using the injected translator.
//
// Example usage with fx:
//
//	app := fx.New(
//	    mariadb.FXModule,
//	    mariadb.ClientFXModule,
//	    logger.FXModule,
//	    fx.Provide(func() mariadb.Config { return loadMariaDBConfig() }),
//	)
func NewMariaDBClientWithDI(params ClientParams) (*MariaDB, error) {
	client, err := NewMariaDB(params.Config, params.Translator)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		client.logger = params.Logger
	}
	return client, nil
}

// MariaDBLifeCycleParams groups the dependencies for MariaDB lifecycle management.
type MariaDBLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	MariaDB   *MariaDB
}

// RegisterMariaDBLifecycle closes the connection pool when the application stops.
func RegisterMariaDBLifecycle(params MariaDBLifeCycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.MariaDB.GracefulShutdown()
		},
	})
}
