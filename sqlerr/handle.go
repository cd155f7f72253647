package sqlerr

import "reflect"

// HandleType tells which scope a handle belongs to.
type HandleType int

const (
	HandleNull HandleType = iota
	HandleEnvironment
	HandleConnection
	HandleStatement
)

func (t HandleType) String() string {
	switch t {
	case HandleEnvironment:
		return "environment"
	case HandleConnection:
		return "connection"
	case HandleStatement:
		return "statement"
	default:
		return "null"
	}
}

// Handle is an opaque, non-owning reference to a driver handle. The zero
// value is the null handle; it is valid everywhere and is never passed to a
// Driver.
type Handle struct {
	typ   HandleType
	token any
}

// NullHandle is the null handle sentinel.
var NullHandle = Handle{}

// EnvironmentHandle wraps a driver environment token. A nil token yields NullHandle.
func EnvironmentHandle(token any) Handle {
	return newHandle(HandleEnvironment, token)
}

// ConnectionHandle wraps a driver connection token. A nil token yields NullHandle.
func ConnectionHandle(token any) Handle {
	return newHandle(HandleConnection, token)
}

// StatementHandle wraps a driver statement token. A nil token yields NullHandle.
func StatementHandle(token any) Handle {
	return newHandle(HandleStatement, token)
}

func newHandle(t HandleType, token any) Handle {
	if isNilToken(token) {
		return NullHandle
	}
	return Handle{typ: t, token: token}
}

// IsNull reports whether h is the null handle.
func (h Handle) IsNull() bool {
	return h.typ == HandleNull || h.token == nil
}

// Type returns the handle scope, HandleNull for the null handle.
func (h Handle) Type() HandleType {
	if h.IsNull() {
		return HandleNull
	}
	return h.typ
}

// Token returns the driver token, nil for the null handle.
func (h Handle) Token() any {
	if h.IsNull() {
		return nil
	}
	return h.token
}

// HandlePair carries the connection and statement a failed call ran against.
// Either member may be null.
type HandlePair struct {
	Connection Handle
	Statement  Handle
}

// Pair builds a HandlePair from a connection and a statement handle.
func Pair(conn, stmt Handle) HandlePair {
	return HandlePair{Connection: conn, Statement: stmt}
}

// IsNull reports whether both members are null.
func (p HandlePair) IsNull() bool {
	return p.Connection.IsNull() && p.Statement.IsNull()
}

// Primary returns the handle whose diagnostic area describes the failed
// call: the statement when present, otherwise the connection.
func (p HandlePair) Primary() Handle {
	if !p.Statement.IsNull() {
		return p.Statement
	}
	return p.Connection
}

// isNilToken treats typed nil pointers (and other nil-able kinds) as absent.
func isNilToken(token any) bool {
	if token == nil {
		return true
	}
	v := reflect.ValueOf(token)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}
