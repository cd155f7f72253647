package sqlerr

// DiagArea is an in-memory diagnostic area: the ordered records a driver
// posted for the last call on one handle. Adapters for Go database drivers
// translate driver errors into records and post them here; AreaDriver then
// serves them through the Driver interface.
//
// A DiagArea is not safe for concurrent use. Like an ODBC handle, it must be
// accessed by one goroutine at a time.
type DiagArea struct {
	records []DiagnosticRecord
}

// NewDiagArea returns an area pre-filled with records.
func NewDiagArea(records ...DiagnosticRecord) *DiagArea {
	a := &DiagArea{}
	a.Post(records...)
	return a
}

// Post appends records in order. Like every DiagArea method it is a no-op
// on a nil area.
func (a *DiagArea) Post(records ...DiagnosticRecord) {
	if a == nil {
		return
	}
	a.records = append(a.records, records...)
}

// Insert places records ahead of the ones already posted. Drivers rank
// errors before warnings, so a failure captured after server notices goes
// first.
func (a *DiagArea) Insert(records ...DiagnosticRecord) {
	if a == nil {
		return
	}
	a.records = append(append(make([]DiagnosticRecord, 0, len(records)+len(a.records)), records...), a.records...)
}

// Reset clears the area, as a driver does at the start of every call.
func (a *DiagArea) Reset() {
	if a == nil {
		return
	}
	a.records = a.records[:0]
}

// Len returns the number of posted records.
func (a *DiagArea) Len() int {
	if a == nil {
		return 0
	}
	return len(a.records)
}

// Record returns the i-th record, 1-based.
func (a *DiagArea) Record(i int) (DiagnosticRecord, bool) {
	if a == nil || i < 1 || i > len(a.records) {
		return DiagnosticRecord{}, false
	}
	return a.records[i-1], true
}

// AreaDriver serves handles whose token is a *DiagArea. Other tokens have no
// records.
type AreaDriver struct{}

// QueryDiagnostic implements Driver.
func (AreaDriver) QueryDiagnostic(h Handle, record int) (DiagnosticRecord, bool) {
	area, ok := h.Token().(*DiagArea)
	if !ok {
		return DiagnosticRecord{}, false
	}
	return area.Record(record)
}
