package dbapi

import (
	"github.com/aalemi-dev/odbcerr/sqlerr"
	"go.uber.org/fx"
)

// FXModule provides the exception dispatcher.
//
// This module provides:
//   - *Dispatcher (concrete type)
//   - Raiser (interface)
//
// Dependencies:
//   - map[sqlerr.Kind]Constructor named "dbapi_overrides" (optional)
var FXModule = fx.Module("dbapi",
	fx.Provide(
		NewDispatcherWithDI,
		fx.Annotate(
			func(d *Dispatcher) Raiser { return d },
			fx.As(new(Raiser)),
		),
	),
)

// DispatcherParams groups the dependencies of NewDispatcherWithDI.
type DispatcherParams struct {
	fx.In

	Overrides map[sqlerr.Kind]Constructor `name:"dbapi_overrides" optional:"true"`
}

// NewDispatcherWithDI creates a Dispatcher from injected dependencies.
func NewDispatcherWithDI(params DispatcherParams) *Dispatcher {
	return NewDispatcher(params.Overrides)
}
