package sqlite

import (
	"context"

	"github.com/aalemi-dev/odbcerr/observability"
	"go.uber.org/fx"
)

// FXModule provides the SQLite error translator.
//
// This module provides:
//   - *Translator (concrete type)
//   - ErrorTranslator (interface)
//
// Dependencies:
//   - sqlite.Config (required; only Diagnostics is used)
//   - sqlite.Logger, observability.Observer (optional)
var FXModule = fx.Module("sqlite",
	fx.Provide(
		NewTranslatorWithDI,
		fx.Annotate(
			ProvideErrorTranslator,
			fx.As(new(ErrorTranslator)),
		),
	),
)

// ClientFXModule additionally opens the database described by sqlite.Config
// and closes it on stop. Use it together with FXModule.
var ClientFXModule = fx.Module("sqlite-client",
	fx.Provide(NewSQLiteClientWithDI),
	fx.Invoke(RegisterSQLiteLifecycle),
)

// ProvideErrorTranslator wraps the concrete *Translator and returns it as ErrorTranslator.
func ProvideErrorTranslator(t *Translator) ErrorTranslator {
	return t
}

// SQLiteParams groups the dependencies of the fx constructors.
type SQLiteParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewTranslatorWithDI creates a Translator from injected dependencies.
func NewTranslatorWithDI(params SQLiteParams) *Translator {
	t := NewTranslator(params.Config.Diagnostics)
	if params.Logger != nil {
		t.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		t.WithObserver(params.Observer)
	}
	return t
}

// ClientParams groups the dependencies of NewSQLiteClientWithDI.
type ClientParams struct {
	fx.In

	Config     Config
	Translator *Translator
	Logger     Logger `optional:"true"`
}

// NewSQLiteClientWithDI opens the database using the injected translator.
//
// Example usage with fx:
//
//	app := fx.New(
//	    sqlite.FXModule,
//	    sqlite.ClientFXModule,
//	    logger.FXModule,
//	    fx.Provide(func() sqlite.Config { return loadSQLiteConfig() }),
//	)
func NewSQLiteClientWithDI(params ClientParams) (*SQLite, error) {
	client, err := NewSQLite(params.Config, params.Translator)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		client.logger = params.Logger
	}
	return client, nil
}

// SQLiteLifeCycleParams groups the dependencies for SQLite lifecycle management.
type SQLiteLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	SQLite    *SQLite
}

// RegisterSQLiteLifecycle closes the database when the application stops.
func RegisterSQLiteLifecycle(params SQLiteLifeCycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return params.SQLite.Close()
		},
	})
}
