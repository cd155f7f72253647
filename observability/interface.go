package observability

import "time"

// Observer receives a notification for every operation performed by the
// odbcerr packages: error constructions, SQLSTATE probes and driver error
// translations. It lets applications attach metrics, tracing or logging
// without those packages depending on a specific backend.
//
// Observers are optional. Implementations must be safe for concurrent use
// and must not block, since they run inline on the caller's goroutine.
type Observer interface {
	// ObserveOperation is called when an operation completes.
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component identifies the package that performed the operation.
	// Examples: "sqlerr", "postgres", "mariadb", "sqlite"
	Component string

	// Operation describes what was done.
	// Examples: "from_handles", "from_records", "from_template", "has_sqlstate", "translate"
	Operation string

	// Resource identifies what the operation was about: the failing driver
	// function for constructions, the probed SQLSTATE for probes.
	Resource string

	// SubResource carries additional context (optional), e.g. the SQLSTATE
	// class ("23") of a constructed error.
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the error the operation produced. For constructions this is
	// the constructed error itself; nil means no error was produced.
	Error error

	// Size is the number of diagnostic records involved.
	Size int64

	// Metadata holds operation-specific details (optional).
	// Examples: {"sqlstate": "23000", "kind": "IntegrityError", "native_code": 1062}
	Metadata map[string]interface{}
}
