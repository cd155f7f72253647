package sqlerr

import (
	"github.com/aalemi-dev/odbcerr/observability"
	"go.uber.org/fx"
)

// FXModule provides the error factory.
//
// This module provides:
//   - *Factory (concrete type)
//   - ErrorFactory (interface)
//
// Dependencies:
//   - sqlerr.Config (required)
//   - sqlerr.Driver (optional; without it only the template path yields records)
//   - sqlerr.Logger, observability.Observer (optional)
var FXModule = fx.Module("sqlerr",
	fx.Provide(
		NewFactoryWithDI,
		fx.Annotate(
			ProvideErrorFactory,
			fx.As(new(ErrorFactory)),
		),
	),
)

// ProvideErrorFactory exposes *Factory as ErrorFactory.
func ProvideErrorFactory(f *Factory) ErrorFactory {
	return f
}

// FactoryParams groups the dependencies of NewFactoryWithDI.
type FactoryParams struct {
	fx.In

	Config   Config
	Driver   Driver                 `optional:"true"`
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewFactoryWithDI creates a Factory from injected dependencies.
//
// Example usage with fx:
//
//	app := fx.New(
//	    sqlerr.FXModule,
//	    fx.Provide(
//	        func() sqlerr.Config { return sqlerr.Config{MaxRecords: 16} },
//	        func() sqlerr.Driver { return sqlerr.AreaDriver{} },
//	    ),
//	)
func NewFactoryWithDI(params FactoryParams) *Factory {
	f := NewFactory(params.Config, params.Driver)
	if params.Logger != nil {
		f.logger = params.Logger
	}
	if params.Observer != nil {
		f.observer = params.Observer
	}
	return f
}
