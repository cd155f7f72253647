package translate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/aalemi-dev/odbcerr/sqlerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu  sync.Mutex
	ops []observability.OperationContext
}

func (o *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, ctx)
}

func (o *recordingObserver) operations() []observability.OperationContext {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]observability.OperationContext(nil), o.ops...)
}

type warnLogger struct {
	warns []string
}

func (l *warnLogger) WarnWithContext(_ context.Context, msg string, _ error, _ ...map[string]interface{}) {
	l.warns = append(l.warns, msg)
}

// lockTimeout is a driver error the test source recognises.
type lockTimeout struct{}

func (lockTimeout) Error() string { return "lock wait timeout" }

func testSource() Source {
	return Source{
		Component: "fake",
		Records: func(err error) []sqlerr.DiagnosticRecord {
			var lt lockTimeout
			if errors.As(err, &lt) {
				return []sqlerr.DiagnosticRecord{sqlerr.NewRecord("HYT00", 1205, lt.Error())}
			}
			return nil
		},
		Origin: func(err error) string {
			if errors.As(err, new(lockTimeout)) {
				return "fakedriver"
			}
			return Unknown
		},
	}
}

func TestTranslateError(t *testing.T) {
	t.Parallel()
	tr := New(sqlerr.Config{}, testSource())
	assert.NoError(t, tr.TranslateError("SQLExecute", nil))

	cause := fmt.Errorf("update stock: %w", lockTimeout{})
	err := tr.TranslateError("SQLExecute", cause)

	var e *sqlerr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, sqlerr.SQLState("HYT00"), e.SQLState())
	assert.Equal(t, "SQLExecute: [HYT00] lock wait timeout (1205)", e.Message())
	assert.True(t, sqlerr.IsTimeout(err))
	assert.ErrorIs(t, err, cause)
}

func TestTranslateError_ObservedOnce(t *testing.T) {
	t.Parallel()
	obs := &recordingObserver{}
	tr := New(sqlerr.Config{}, testSource()).WithObserver(obs)

	_ = tr.TranslateError("SQLExecDirect", lockTimeout{})

	ops := obs.operations()
	require.Len(t, ops, 1)
	op := ops[0]
	assert.Equal(t, "fake", op.Component)
	assert.Equal(t, "translate", op.Operation)
	assert.Equal(t, "SQLExecDirect", op.Resource)
	assert.Equal(t, "fakedriver", op.SubResource)
	assert.Equal(t, int64(1), op.Size)
	assert.Equal(t, "HYT00", op.Metadata["sqlstate"])
	assert.Equal(t, "OperationalError", op.Metadata["kind"])

	_ = tr.Factory().FromTemplate("HY000", nil, "direct construction")
	assert.Len(t, obs.operations(), 1, "the factory is not observed")
}

func TestTranslateError_UnknownErrorLogged(t *testing.T) {
	t.Parallel()
	log := &warnLogger{}
	obs := &recordingObserver{}
	tr := New(sqlerr.Config{}, testSource()).WithLogger(log).WithObserver(obs)

	err := tr.TranslateError("SQLFetch", errors.New("scan: unsupported type"))
	assert.Equal(t, "SQLFetch: [HY000] scan: unsupported type (0)", err.Error())
	assert.Equal(t, []string{"no diagnostics in driver error"}, log.warns)
	require.Len(t, obs.operations(), 1)
	assert.Equal(t, Unknown, obs.operations()[0].SubResource)
}

func TestTranslateAreaError_FailureRanksFirst(t *testing.T) {
	t.Parallel()
	tr := New(sqlerr.Config{}, testSource())
	area := sqlerr.NewDiagArea(sqlerr.NewRecord("01004", 0, "string data, right truncated"))

	err := tr.TranslateAreaError("SQLExecute", area, lockTimeout{})
	var e *sqlerr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, sqlerr.SQLState("HYT00"), e.SQLState())
	assert.Equal(t, 2, e.RecordCount())
	assert.True(t, tr.Factory().HasMoreData(sqlerr.StatementHandle(area)))

	assert.NoError(t, tr.TranslateAreaError("SQLExecute", area, nil))
	assert.Error(t, tr.TranslateAreaError("SQLExecute", nil, lockTimeout{}))
}

func TestCapture(t *testing.T) {
	t.Parallel()
	tr := New(sqlerr.Config{}, testSource())
	area := sqlerr.NewDiagArea()

	assert.Equal(t, 0, tr.Capture(nil, lockTimeout{}))
	assert.Equal(t, 0, tr.Capture(area, nil))
	assert.Equal(t, 1, tr.Capture(area, errors.New("opaque")))
	assert.Equal(t, 1, tr.Capture(area, lockTimeout{}))

	first, ok := area.Record(1)
	require.True(t, ok)
	assert.Equal(t, sqlerr.SQLState("HYT00"), first.SQLState)
	second, ok := area.Record(2)
	require.True(t, ok)
	assert.Equal(t, sqlerr.DefaultSQLState, second.SQLState)
	assert.Equal(t, "opaque", second.Message)
}

func TestSource_Empty(t *testing.T) {
	t.Parallel()
	obs := &recordingObserver{}
	tr := New(sqlerr.Config{}, Source{}).WithObserver(obs)

	err := tr.TranslateError("SQLExecute", lockTimeout{})
	assert.True(t, sqlerr.HasSQLState(err, "HY000"))
	require.Len(t, obs.operations(), 1)
	assert.Equal(t, Unknown, obs.operations()[0].SubResource)
	assert.Empty(t, obs.operations()[0].Component)
}
