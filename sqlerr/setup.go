package sqlerr

import (
	"errors"
	"time"

	"github.com/aalemi-dev/odbcerr/observability"
)

// Factory constructs classified errors from driver diagnostics or from
// message templates. It is immutable after construction apart from the
// WithLogger/WithObserver builders, which should be called before first use;
// afterwards it is safe for concurrent use.
//
// Factory never propagates the errors it builds. Handing them to the caller's
// error path (or to dbapi.FromError) is up to the caller.
type Factory struct {
	cfg      Config
	reader   *DiagnosticReader
	composer MessageComposer
	logger   Logger
	observer observability.Observer
}

// NewFactory returns a Factory that reads diagnostics from driver. driver may
// be nil when only the template path is used.
//
// Returns *Factory concrete type; it implements ErrorFactory.
func NewFactory(cfg Config, driver Driver) *Factory {
	return &Factory{
		cfg:      cfg,
		reader:   NewDiagnosticReader(driver, cfg.MaxRecords),
		composer: NewMessageComposer(cfg.RecordSeparator, cfg.UnknownErrorText),
	}
}

// WithLogger attaches a logger for construction anomalies (malformed
// templates, truncated diagnostic areas).
func (f *Factory) WithLogger(logger Logger) *Factory {
	f.logger = logger
	return f
}

// WithObserver attaches an observer notified after every construction and
// statement probe.
func (f *Factory) WithObserver(observer observability.Observer) *Factory {
	f.observer = observer
	return f
}

// Reader exposes the factory's diagnostic reader.
func (f *Factory) Reader() *DiagnosticReader {
	return f.reader
}

// FromHandles reads the diagnostics posted for the failed call, takes the
// first record as primary, classifies its SQLSTATE and composes every record
// into the message. With a null pair, or a handle without records, the result
// is a KindError with SQLSTATE HY000 whose message names function.
func (f *Factory) FromHandles(function string, pair HandlePair) *Error {
	start := time.Now()
	records := f.reader.Collect(pair)
	if f.reader.truncated(pair.Primary(), len(records)) {
		f.logWarn("diagnostic area truncated", nil, map[string]interface{}{
			"function":    function,
			"max_records": f.reader.maxRecords,
		})
	}
	e := f.build(function, records)
	f.observe("from_handles", function, time.Since(start), e)
	return e
}

// FromRecords builds the error FromHandles would build for records.
func (f *Factory) FromRecords(function string, records []DiagnosticRecord) *Error {
	start := time.Now()
	e := f.build(function, records)
	f.observe("from_records", function, time.Since(start), e)
	return e
}

func (f *Factory) build(function string, records []DiagnosticRecord) *Error {
	e := &Error{
		kind:     KindError,
		sqlstate: DefaultSQLState,
		function: function,
		records:  len(records),
		message:  f.composer.Records(function, records),
	}
	if len(records) > 0 {
		first := records[0]
		e.sqlstate = NormalizeSQLState(string(first.SQLState))
		e.kind = Classify(string(e.sqlstate))
		e.native = first.NativeCode
		e.hasNative = true
	}
	return e
}

// FromTemplate builds an error without touching any handle. An empty or
// malformed state becomes HY000. A nil kind is derived with Classify, so HY000
// without an explicit kind yields KindError.
//
// An empty format is a programming error: it is logged at error level and
// replaced by the generic unknown-error text. Mismatched arguments are logged
// at warn level and the message keeps fmt's %!verb(...) markers.
func (f *Factory) FromTemplate(state string, kind *Kind, format string, args ...any) *Error {
	start := time.Now()
	s := NormalizeSQLState(state)
	if err := CheckFormat(format, args...); err != nil {
		fields := map[string]interface{}{
			"sqlstate": string(s),
			"format":   format,
		}
		if errors.Is(err, ErrEmptyFormat) {
			f.logError("malformed error message template", err, fields)
		} else {
			f.logWarn("malformed error message template", err, fields)
		}
	}
	k := Classify(string(s))
	if kind != nil && kind.Valid() {
		k = *kind
	}
	e := &Error{
		kind:     k,
		sqlstate: s,
		message:  f.composer.Template(s, format, args...),
	}
	f.observe("from_template", "", time.Since(start), e)
	return e
}

func (f *Factory) logWarn(msg string, err error, fields map[string]interface{}) {
	if f.logger != nil {
		f.logger.Warn(msg, err, fields)
	}
}

func (f *Factory) logError(msg string, err error, fields map[string]interface{}) {
	if f.logger != nil {
		f.logger.Error(msg, err, fields)
	}
}

var defaultFactory = NewFactory(Config{}, nil)

// Newf builds an error from a SQLSTATE and a message, deriving the kind from
// the SQLSTATE. It uses a factory with default settings and no driver.
func Newf(state string, format string, args ...any) *Error {
	return defaultFactory.FromTemplate(state, nil, format, args...)
}

// NewKindf is Newf with an explicit kind.
func NewKindf(kind Kind, state string, format string, args ...any) *Error {
	return defaultFactory.FromTemplate(state, &kind, format, args...)
}
