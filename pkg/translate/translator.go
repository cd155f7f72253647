package translate

import (
	"context"
	"time"

	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/aalemi-dev/odbcerr/sqlerr"
)

// Unknown is the source reported for errors no record could be derived from.
const Unknown = "unknown"

// Logger is the subset of the adapters' loggers a Translator uses.
type Logger interface {
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Source describes one driver family.
type Source struct {
	// Component is the observability component name, e.g. "postgres".
	Component string

	// Records derives diagnostic records from a driver error, primary first.
	// It returns nil when err carries nothing it recognises.
	Records func(err error) []sqlerr.DiagnosticRecord

	// Origin names where the records of err came from (pgconn, mysql,
	// client...). Nil or an empty result means Unknown.
	Origin func(err error) string
}

// Translator turns driver errors into classified *sqlerr.Error values.
// Errors are posted to a diagnostic area and read back through the handle
// path, so the result carries every record in order.
//
// A Translator is safe for concurrent use once configured.
type Translator struct {
	src      Source
	factory  *sqlerr.Factory
	observer observability.Observer
	logger   Logger
}

// New returns a translator for src composing messages per cfg.
func New(cfg sqlerr.Config, src Source) *Translator {
	return &Translator{
		src:     src,
		factory: sqlerr.NewFactory(cfg, sqlerr.AreaDriver{}),
	}
}

// WithObserver attaches an observer notified once per translation.
func (t *Translator) WithObserver(observer observability.Observer) *Translator {
	t.observer = observer
	return t
}

// WithLogger attaches a logger for errors no record could be derived from.
func (t *Translator) WithLogger(logger Logger) *Translator {
	t.logger = logger
	return t
}

// Factory returns the underlying error factory, for statement probes on
// areas filled by Capture or TranslateAreaError.
func (t *Translator) Factory() *sqlerr.Factory {
	return t.factory
}

// Capture posts the records of err into area ahead of any records already
// there and returns how many were posted. An error no record can be derived
// from is posted as HY000 with its text.
func (t *Translator) Capture(area *sqlerr.DiagArea, err error) int {
	if area == nil || err == nil {
		return 0
	}
	records := t.records(err)
	if len(records) == 0 {
		records = []sqlerr.DiagnosticRecord{sqlerr.NewRecord(string(sqlerr.DefaultSQLState), 0, err.Error())}
	}
	area.Insert(records...)
	return len(records)
}

// TranslateError classifies err as the failure of function. It returns nil
// for nil; otherwise a *sqlerr.Error that unwraps to err.
func (t *Translator) TranslateError(function string, err error) error {
	if err == nil {
		return nil
	}
	return t.TranslateAreaError(function, sqlerr.NewDiagArea(), err)
}

// TranslateAreaError is TranslateError for a statement whose notices or
// warnings were already collected into area. The failure ranks ahead of
// them; area keeps all records for later probes.
func (t *Translator) TranslateAreaError(function string, area *sqlerr.DiagArea, err error) error {
	if err == nil {
		return nil
	}
	start := time.Now()
	if area == nil {
		area = sqlerr.NewDiagArea()
	}
	origin := t.origin(err)
	if origin == Unknown {
		t.logWarn(context.Background(), "no diagnostics in driver error", err, map[string]interface{}{
			"function": function,
		})
	}
	t.Capture(area, err)
	e := t.factory.FromHandles(function, sqlerr.Pair(sqlerr.NullHandle, sqlerr.StatementHandle(area))).WithCause(err)
	t.observe(function, origin, time.Since(start), e)
	return e
}

func (t *Translator) records(err error) []sqlerr.DiagnosticRecord {
	if t.src.Records == nil {
		return nil
	}
	return t.src.Records(err)
}

func (t *Translator) origin(err error) string {
	if t.src.Origin == nil {
		return Unknown
	}
	if o := t.src.Origin(err); o != "" {
		return o
	}
	return Unknown
}

// observe notifies the observer about a translation.
//
// Notes:
//   - resource: the failing function
//   - subResource: where the diagnostics came from
func (t *Translator) observe(function, origin string, duration time.Duration, e *sqlerr.Error) {
	if t == nil || t.observer == nil || e == nil {
		return
	}
	t.observer.ObserveOperation(observability.OperationContext{
		Component:   t.src.Component,
		Operation:   "translate",
		Resource:    function,
		SubResource: origin,
		Duration:    duration,
		Error:       e,
		Size:        int64(e.RecordCount()),
		Metadata: map[string]interface{}{
			"sqlstate": string(e.SQLState()),
			"kind":     e.Kind().String(),
		},
	})
}

func (t *Translator) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if t.logger != nil {
		t.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
