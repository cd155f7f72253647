package kafka

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/aalemi-dev/odbcerr/sqlerr"
	"github.com/segmentio/kafka-go"
)

// Message header keys set on every published event.
const (
	HeaderKind      = "odbcerr-kind"
	HeaderComponent = "odbcerr-component"
)

// ErrorEvent is the JSON payload published for one classified error.
type ErrorEvent struct {
	Time       time.Time `json:"time"`
	Service    string    `json:"service,omitempty"`
	Component  string    `json:"component"`
	Operation  string    `json:"operation"`
	Function   string    `json:"function,omitempty"`
	Source     string    `json:"source,omitempty"`
	SQLState   string    `json:"sqlstate"`
	Class      string    `json:"class"`
	Kind       string    `json:"kind"`
	NativeCode *int32    `json:"native_code,omitempty"`
	Records    int       `json:"records"`
	Message    string    `json:"message"`
	DurationUS int64     `json:"duration_us"`
}

// NewErrorEvent builds an event from an observed operation. It reports false
// when the operation did not produce a classified error.
//
// Source is filled from the SubResource of driver translations (pgconn, pq,
// gorm...). Factory constructions put the SQLSTATE class there, which the
// event already carries.
func NewErrorEvent(op observability.OperationContext, service string, now time.Time) (ErrorEvent, bool) {
	var e *sqlerr.Error
	if op.Error == nil || !errors.As(op.Error, &e) {
		return ErrorEvent{}, false
	}

	ev := ErrorEvent{
		Time:       now.UTC(),
		Service:    service,
		Component:  op.Component,
		Operation:  op.Operation,
		Function:   e.Function(),
		SQLState:   string(e.SQLState()),
		Class:      e.SQLState().Class(),
		Kind:       e.Kind().String(),
		Records:    e.RecordCount(),
		Message:    e.Message(),
		DurationUS: op.Duration.Microseconds(),
	}
	if op.Component != sqlerr.Component {
		ev.Source = op.SubResource
	}
	if native, ok := e.NativeCode(); ok {
		ev.NativeCode = &native
	}
	return ev, true
}

// message encodes the event. The SQLSTATE is the key so that events of one
// state stay ordered within a partition.
func (ev ErrorEvent) message() (kafka.Message, error) {
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(ev.SQLState),
		Value: value,
		Time:  ev.Time,
		Headers: []kafka.Header{
			{Key: HeaderKind, Value: []byte(ev.Kind)},
			{Key: HeaderComponent, Value: []byte(ev.Component)},
		},
	}, nil
}
