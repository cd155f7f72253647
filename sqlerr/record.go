package sqlerr

import "fmt"

// DiagnosticRecord is one entry of a handle's diagnostic area.
type DiagnosticRecord struct {
	// SQLState is normalized by the reader; records built by hand may hold
	// any value and are normalized when used.
	SQLState SQLState

	// NativeCode is the driver-specific error number. It has no portable meaning.
	NativeCode int32

	// Message is the driver text, as supplied.
	Message string
}

// NewRecord builds a record with a normalized SQLSTATE.
func NewRecord(state string, native int32, message string) DiagnosticRecord {
	return DiagnosticRecord{
		SQLState:   NormalizeSQLState(state),
		NativeCode: native,
		Message:    message,
	}
}

func (r DiagnosticRecord) String() string {
	return fmt.Sprintf("[%s] %s (%d)", NormalizeSQLState(string(r.SQLState)), cleanMessage(r.Message), r.NativeCode)
}
