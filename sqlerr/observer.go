package sqlerr

import (
	"time"

	"github.com/aalemi-dev/odbcerr/observability"
)

// Component is the observability component name of this package.
const Component = "sqlerr"

// observe reports a construction to the observer, if one is configured.
func (f *Factory) observe(operation, function string, duration time.Duration, e *Error) {
	if f == nil || f.observer == nil {
		return
	}
	metadata := map[string]interface{}{
		"sqlstate": string(e.SQLState()),
		"kind":     e.Kind().String(),
	}
	if native, ok := e.NativeCode(); ok {
		metadata["native_code"] = native
	}
	f.observer.ObserveOperation(observability.OperationContext{
		Component:   Component,
		Operation:   operation,
		Resource:    function,
		SubResource: e.SQLState().Class(),
		Duration:    duration,
		Error:       e,
		Size:        int64(e.RecordCount()),
		Metadata:    metadata,
	})
}

// observeProbe reports a statement SQLSTATE probe.
func (f *Factory) observeProbe(state string, duration time.Duration, matched bool, records int) {
	if f == nil || f.observer == nil {
		return
	}
	f.observer.ObserveOperation(observability.OperationContext{
		Component: Component,
		Operation: "has_sqlstate",
		Resource:  state,
		Duration:  duration,
		Size:      int64(records),
		Metadata: map[string]interface{}{
			"matched": matched,
		},
	})
}
