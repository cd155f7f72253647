package sqlerr

import "strconv"

// Error is a classified database error. It is immutable once constructed and
// holds no reference to the handles that produced it, so it can be shared
// freely between goroutines.
type Error struct {
	kind      Kind
	sqlstate  SQLState
	message   string
	native    int32
	hasNative bool
	function  string
	records   int
	cause     error
}

// Kind returns the error class.
func (e *Error) Kind() Kind {
	if e == nil {
		return KindError
	}
	return e.kind
}

// SQLState returns the primary SQLSTATE, HY000 when none was available.
func (e *Error) SQLState() SQLState {
	if e == nil {
		return DefaultSQLState
	}
	return e.sqlstate
}

// Message returns the composed message.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// NativeCode returns the driver error number of the primary record, if any.
func (e *Error) NativeCode() (int32, bool) {
	if e == nil {
		return 0, false
	}
	return e.native, e.hasNative
}

// Function returns the name of the failing driver call for errors built from
// handles, "" otherwise.
func (e *Error) Function() string {
	if e == nil {
		return ""
	}
	return e.function
}

// RecordCount returns how many diagnostic records were merged into the message.
func (e *Error) RecordCount() int {
	if e == nil {
		return 0
	}
	return e.records
}

// WithCause returns a copy of e that unwraps to cause, typically the driver
// error the diagnostics were captured from.
func (e *Error) WithCause(cause error) *Error {
	if e == nil {
		return nil
	}
	c := *e
	c.cause = cause
	return &c
}

// Unwrap returns the driver error e was built from, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Error implements error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.message
}

// Is matches the sentinel of e's kind or any ancestor kind, and another
// *Error with the same kind and SQLSTATE.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if k, ok := kindOfSentinel(target); ok {
		return e.kind.IsA(k)
	}
	if other, ok := target.(*Error); ok && other != nil {
		return other.kind == e.kind && other.sqlstate == e.sqlstate
	}
	return false
}

// Fields returns structured logging fields describing e.
func (e *Error) Fields() map[string]interface{} {
	if e == nil {
		return nil
	}
	fields := map[string]interface{}{
		"sqlstate":   string(e.sqlstate),
		"error_kind": e.kind.String(),
	}
	if e.hasNative {
		fields["native_code"] = strconv.FormatInt(int64(e.native), 10)
	}
	if e.function != "" {
		fields["function"] = e.function
	}
	return fields
}
