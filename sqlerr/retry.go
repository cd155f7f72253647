package sqlerr

import "errors"

var retryableStates = map[SQLState]struct{}{
	SQLStateSerialization:     {},
	SQLStateStatementUnknown:  {},
	SQLStateDeadlock:          {},
	SQLStateUnableToConnect:   {},
	SQLStateConnectionFailure: {},
	SQLStateCommLinkFailure:   {},
	SQLStateTimeout:           {},
	SQLStateConnectTimeout:    {},
}

var timeoutStates = map[SQLState]struct{}{
	SQLStateTimeout:           {},
	SQLStateConnectTimeout:    {},
	SQLStateOperationCanceled: {},
}

var connectionLostStates = map[SQLState]struct{}{
	SQLStateConnectionNotOpen: {},
	SQLStateConnectionFailure: {},
	SQLStateCommLinkFailure:   {},
}

// IsRetryable reports whether err carries a SQLSTATE that usually clears on
// retry: serialization failures, deadlocks, lost connections and timeouts.
func IsRetryable(err error) bool {
	return primaryIn(err, retryableStates)
}

// IsTimeout reports whether err carries a timeout or cancellation SQLSTATE.
func IsTimeout(err error) bool {
	return primaryIn(err, timeoutStates)
}

// IsConnectionLost reports whether err says the connection is gone.
func IsConnectionLost(err error) bool {
	return primaryIn(err, connectionLostStates)
}

func primaryIn(err error, set map[SQLState]struct{}) bool {
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return false
	}
	_, ok := set[e.sqlstate]
	return ok
}
