package postgres

import (
	"context"

	"github.com/aalemi-dev/odbcerr/observability"
	"go.uber.org/fx"
)

// FXModule provides the PostgreSQL error translator.
//
// This module provides:
//   - *Translator (concrete type)
//   - ErrorTranslator (interface)
//
// Dependencies:
//   - postgres.Config (required; only Diagnostics is used)
//   - postgres.Logger, observability.Observer (optional)
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewTranslatorWithDI,
		fx.Annotate(
			ProvideErrorTranslator,
			fx.As(new(ErrorTranslator)),
		),
	),
)

// ClientFXModule additionally opens the database described by postgres.Config
// and closes it on stop. Use it together with FXModule.
var ClientFXModule = fx.Module("postgres-client",
	fx.Provide(NewPostgresClientWithDI),
	fx.Invoke(RegisterPostgresLifecycle),
)

// ProvideErrorTranslator wraps the concrete *Translator and returns it as ErrorTranslator.
func ProvideErrorTranslator(t *Translator) ErrorTranslator {
	return t
}

// PostgresParams groups the dependencies of the fx constructors.
type PostgresParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewTranslatorWithDI creates a Translator from injected dependencies.
func NewTranslatorWithDI(params PostgresParams) *Translator {
	t := NewTranslator(params.Config.Diagnostics)
	if params.Logger != nil {
		t.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		t.WithObserver(params.Observer)
	}
	return t
}

// ClientParams groups the dependencies of NewPostgresClientWithDI.
type ClientParams struct {
	fx.In

	Config     Config
	Translator *Translator
	Logger     Logger `optional:"true"`
}

// NewPostgresClientWithDI opens the database using the injected translator.
//
// Example usage with fx:
//
//	app := fx.New(
//	    postgres.FXModule,
//	    postgres.ClientFXModule,
//	    logger.FXModule,
//	    fx.Provide(func() postgres.Config { return loadPostgresConfig() }),
//	)
func NewPostgresClientWithDI(params ClientParams) (*Postgres, error) {
	client, err := NewPostgres(params.Config, params.Translator)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		client.logger = params.Logger
	}
	return client, nil
}

// PostgresLifeCycleParams groups the dependencies for Postgres lifecycle management.
type PostgresLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Postgres  *Postgres
}

// RegisterPostgresLifecycle closes the connection pool when the application stops.
func RegisterPostgresLifecycle(params PostgresLifeCycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.Postgres.GracefulShutdown()
		},
	})
}
