package dbapi

import (
	"strconv"

	"github.com/aalemi-dev/odbcerr/sqlerr"
)

// Exception carries what the host error path needs from a constructed error.
// Every concrete exception type embeds it.
type Exception struct {
	Kind       sqlerr.Kind
	SQLState   sqlerr.SQLState
	NativeCode int32
	HasNative  bool
	Message    string

	cause *sqlerr.Error
}

// Error implements error.
func (e Exception) Error() string {
	if e.Message == "" {
		return "[" + string(e.state()) + "] " + e.Kind.String()
	}
	return e.Message
}

// Details returns the exception payload.
func (e Exception) Details() Exception {
	return e
}

// Unwrap exposes the kind sentinel and, for exceptions built with FromError,
// the originating *sqlerr.Error.
func (e Exception) Unwrap() []error {
	errs := []error{e.Kind.Sentinel()}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// Is matches the sentinels of ancestor kinds, so an IntegrityError is also
// errors.Is(err, sqlerr.ErrDatabase).
func (e Exception) Is(target error) bool {
	for _, k := range sqlerr.Kinds() {
		if k.Sentinel() == target {
			return e.Kind.IsA(k)
		}
	}
	return false
}

// Fields returns the exception as structured log fields.
func (e Exception) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"sqlstate":   string(e.state()),
		"error_kind": e.Kind.String(),
	}
	if e.HasNative {
		fields["native_code"] = strconv.FormatInt(int64(e.NativeCode), 10)
	}
	return fields
}

func (e Exception) state() sqlerr.SQLState {
	return sqlerr.NormalizeSQLState(string(e.SQLState))
}

// Detailed is implemented by every concrete exception type.
type Detailed interface {
	error
	Details() Exception
}

// Concrete exception types, one per kind.
type (
	Warning           struct{ Exception }
	Error             struct{ Exception }
	InterfaceError    struct{ Exception }
	DatabaseError     struct{ Exception }
	DataError         struct{ Exception }
	OperationalError  struct{ Exception }
	IntegrityError    struct{ Exception }
	InternalError     struct{ Exception }
	ProgrammingError  struct{ Exception }
	NotSupportedError struct{ Exception }
)
