package sqlerr

import "iter"

// DefaultMaxRecords bounds how many records are read from one handle.
const DefaultMaxRecords = 64

// Driver is the diagnostic interface of a connectivity driver.
//
// QueryDiagnostic returns the record-th diagnostic record (1-based) of h and
// true, or false once there are no more records. It is never called with a
// null handle. Implementations must not mutate the handle's state.
type Driver interface {
	QueryDiagnostic(h Handle, record int) (DiagnosticRecord, bool)
}

// DriverFunc adapts a function to the Driver interface.
type DriverFunc func(h Handle, record int) (DiagnosticRecord, bool)

// QueryDiagnostic calls f(h, record).
func (f DriverFunc) QueryDiagnostic(h Handle, record int) (DiagnosticRecord, bool) {
	return f(h, record)
}

// DiagnosticReader pulls diagnostic records out of a driver.
type DiagnosticReader struct {
	driver     Driver
	maxRecords int
}

// NewDiagnosticReader returns a reader over driver. maxRecords <= 0 selects
// DefaultMaxRecords. A nil driver is allowed and yields no records.
func NewDiagnosticReader(driver Driver, maxRecords int) *DiagnosticReader {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &DiagnosticReader{driver: driver, maxRecords: maxRecords}
}

// Records returns the diagnostic records of the pair's primary handle in
// driver order. The sequence is lazy and restartable: every range over it
// queries the driver again starting from record 1. A null pair yields
// nothing.
func (r *DiagnosticReader) Records(pair HandlePair) iter.Seq[DiagnosticRecord] {
	return r.HandleRecords(pair.Primary())
}

// HandleRecords is Records for a single handle.
func (r *DiagnosticReader) HandleRecords(h Handle) iter.Seq[DiagnosticRecord] {
	return func(yield func(DiagnosticRecord) bool) {
		if r == nil || r.driver == nil || h.IsNull() {
			return
		}
		for i := 1; i <= r.maxRecords; i++ {
			rec, ok := r.driver.QueryDiagnostic(h, i)
			if !ok {
				return
			}
			rec.SQLState = NormalizeSQLState(string(rec.SQLState))
			if !yield(rec) {
				return
			}
		}
	}
}

// Collect materializes Records(pair).
func (r *DiagnosticReader) Collect(pair HandlePair) []DiagnosticRecord {
	var records []DiagnosticRecord
	for rec := range r.Records(pair) {
		records = append(records, rec)
	}
	return records
}

// truncated reports whether h holds more records than the reader returns.
func (r *DiagnosticReader) truncated(h Handle, read int) bool {
	if r == nil || r.driver == nil || h.IsNull() || read < r.maxRecords {
		return false
	}
	_, more := r.driver.QueryDiagnostic(h, read+1)
	return more
}
