package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"

	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/aalemi-dev/odbcerr/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"gorm.io/gorm"
)

// ── test doubles ──────────────────────────────────────────────────────────────

// TestObserver is a mock observer for testing.
type TestObserver struct {
	mu         sync.Mutex
	operations []observability.OperationContext
}

func (t *TestObserver) ObserveOperation(ctx observability.OperationContext) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.operations = append(t.operations, ctx)
}

func (t *TestObserver) GetOperations() []observability.OperationContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]observability.OperationContext, len(t.operations))
	copy(out, t.operations)
	return out
}

type testLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *testLogger) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
}

func (l *testLogger) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *testLogger) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
}

func uniqueViolation() *pgconn.PgError {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		Detail:         "Key (email)=(a@example.com) already exists.",
		TableName:      "users",
		ConstraintName: "users_email_key",
	}
}

// ── Records ───────────────────────────────────────────────────────────────────

func TestRecords_NilAndUnknown(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Records(nil))
	assert.Nil(t, Records(errors.New("something unrelated")))
}

func TestRecords_PgError(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("insert user: %w", uniqueViolation())

	records := Records(err)
	require.Len(t, records, 1)
	assert.Equal(t, sqlerr.SQLState("23505"), records[0].SQLState)
	assert.Equal(t, int32(0), records[0].NativeCode)
	assert.Equal(t,
		`ERROR: duplicate key value violates unique constraint "users_email_key" DETAIL: Key (email)=(a@example.com) already exists.`,
		records[0].Message)
}

func TestRecords_PQError(t *testing.T) {
	t.Parallel()
	err := &pq.Error{
		Severity: "ERROR",
		Code:     "42P01",
		Message:  `relation "orders" does not exist`,
		Hint:     "Check the search_path.",
	}
	records := Records(err)
	require.Len(t, records, 1)
	assert.Equal(t, sqlerr.SQLState("42P01"), records[0].SQLState)
	assert.Equal(t, `ERROR: relation "orders" does not exist HINT: Check the search_path.`, records[0].Message)
}

func TestRecords_TreeOrder(t *testing.T) {
	t.Parallel()
	first := &pgconn.PgError{Severity: "ERROR", Code: "40P01", Message: "deadlock detected"}
	second := &pq.Error{Severity: "ERROR", Code: "25P02", Message: "current transaction is aborted"}
	err := errors.Join(fmt.Errorf("update: %w", first), second)

	records := Records(err)
	require.Len(t, records, 2)
	assert.Equal(t, sqlerr.SQLState("40P01"), records[0].SQLState)
	assert.Equal(t, sqlerr.SQLState("25P02"), records[1].SQLState)
}

func TestRecords_ServerErrorWinsOverGormSentinel(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("%w: %w", gorm.ErrDuplicatedKey, uniqueViolation())
	records := Records(err)
	require.Len(t, records, 1)
	assert.Contains(t, records[0].Message, "users_email_key")
}

func TestRecords_ClientConditions(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		err   error
		state sqlerr.SQLState
	}{
		{"no rows", pgx.ErrNoRows, "02000"},
		{"gorm not found", gorm.ErrRecordNotFound, "02000"},
		{"gorm duplicate", gorm.ErrDuplicatedKey, "23505"},
		{"canceled", fmt.Errorf("query: %w", context.Canceled), "HY008"},
		{"deadline", context.DeadlineExceeded, "HYT00"},
		{"bad conn", driver.ErrBadConn, "08S01"},
		{"network", &net.OpError{Op: "read", Err: errors.New("connection reset by peer")}, "08S01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			records := Records(tc.err)
			require.Len(t, records, 1)
			assert.Equal(t, tc.state, records[0].SQLState)
			assert.Equal(t, tc.err.Error(), records[0].Message)
		})
	}
}

// ── Translator ────────────────────────────────────────────────────────────────

func TestTranslateError(t *testing.T) {
	t.Parallel()
	tr := NewTranslator(sqlerr.Config{})
	assert.NoError(t, tr.TranslateError("SQLExecDirect", nil))

	pgErr := uniqueViolation()
	err := tr.TranslateError("SQLExecDirect", fmt.Errorf("insert user: %w", pgErr))
	require.Error(t, err)

	var e *sqlerr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, sqlerr.KindIntegrityError, e.Kind())
	assert.Equal(t, "SQLExecDirect", e.Function())
	assert.True(t, sqlerr.HasSQLState(err, "23505"))
	assert.ErrorIs(t, err, sqlerr.ErrDatabase)
	assert.Contains(t, e.Message(), "SQLExecDirect: [23505] ERROR: duplicate key value")

	var back *pgconn.PgError
	require.ErrorAs(t, err, &back)
	assert.Same(t, pgErr, back)
}

func TestTranslateError_RetryHints(t *testing.T) {
	t.Parallel()
	tr := NewTranslator(sqlerr.Config{})

	deadlock := tr.TranslateError("SQLExecute", &pgconn.PgError{Code: "40P01", Message: "deadlock detected"})
	assert.True(t, sqlerr.IsRetryable(deadlock))
	assert.ErrorIs(t, deadlock, sqlerr.ErrOperational)

	timeout := tr.TranslateError("SQLExecute", context.DeadlineExceeded)
	assert.True(t, sqlerr.IsTimeout(timeout))
	assert.ErrorIs(t, timeout, context.DeadlineExceeded)
}

func TestTranslateError_UnknownErrorKeepsText(t *testing.T) {
	t.Parallel()
	log := &testLogger{}
	tr := NewTranslator(sqlerr.Config{}).WithLogger(log)

	err := tr.TranslateError("SQLFetch", errors.New("scan: unsupported type"))
	var e *sqlerr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, sqlerr.DefaultSQLState, e.SQLState())
	assert.Equal(t, sqlerr.KindError, e.Kind())
	assert.Equal(t, "SQLFetch: [HY000] scan: unsupported type (0)", e.Message())
	assert.Equal(t, []string{"no diagnostics in driver error"}, log.warns)
}

func TestTranslateAreaError_WithNotices(t *testing.T) {
	t.Parallel()
	tr := NewTranslator(sqlerr.Config{})
	area := sqlerr.NewDiagArea()

	onNotice := NoticeHandler(area)
	onNotice(nil, &pgconn.Notice{Severity: "NOTICE", Code: "00000", Message: "table \"tmp\" does not exist, skipping"})
	onNotice(nil, &pgconn.Notice{Severity: "WARNING", Code: "01004", Message: "value truncated"})
	onNotice(nil, nil)

	err := tr.TranslateAreaError("SQLExecute", area, uniqueViolation())
	var e *sqlerr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, sqlerr.SQLState("23505"), e.SQLState(), "failures rank ahead of notices")
	assert.Equal(t, 3, e.RecordCount())
	assert.Contains(t, e.Message(), "[01000] NOTICE: table")
	assert.Contains(t, e.Message(), "[01004] WARNING: value truncated")

	stmt := sqlerr.StatementHandle(area)
	assert.True(t, tr.Factory().StatementHasSQLState(stmt, "01004"))
	assert.True(t, tr.Factory().HasMoreData(stmt))
	assert.NoError(t, tr.TranslateAreaError("SQLExecute", area, nil))
}

func TestPQNoticeHandler(t *testing.T) {
	t.Parallel()
	area := sqlerr.NewDiagArea()
	h := PQNoticeHandler(area)
	h(&pq.Error{Severity: "WARNING", Code: "01000", Message: "there is no transaction in progress"})
	h(nil)
	PQNoticeHandler(nil)(&pq.Error{Code: "01000"})

	require.Equal(t, 1, area.Len())
	rec, _ := area.Record(1)
	assert.Equal(t, sqlerr.SQLStateWarning, rec.SQLState)
	assert.Equal(t, "WARNING: there is no transaction in progress", rec.Message)
}

func TestCapture(t *testing.T) {
	t.Parallel()
	tr := NewTranslator(sqlerr.Config{})
	assert.Equal(t, 0, tr.Capture(nil, uniqueViolation()))
	area := sqlerr.NewDiagArea()
	assert.Equal(t, 0, tr.Capture(area, nil))
	assert.Equal(t, 1, tr.Capture(area, errors.New("plain")))
	assert.Equal(t, 2, tr.Capture(area, errors.Join(uniqueViolation(), &pq.Error{Code: "23503"})))
	assert.Equal(t, 3, area.Len())
}

// ── observer ──────────────────────────────────────────────────────────────────

func TestTranslator_Observer(t *testing.T) {
	t.Parallel()
	obs := &TestObserver{}
	tr := NewTranslator(sqlerr.Config{}).WithObserver(obs)

	_ = tr.TranslateError("SQLExecDirect", uniqueViolation())
	_ = tr.TranslateError("SQLExecDirect", gorm.ErrRecordNotFound)

	var ours []observability.OperationContext
	for _, op := range obs.GetOperations() {
		if op.Component == Component {
			ours = append(ours, op)
		}
	}
	require.Len(t, ours, 2)
	assert.Equal(t, "translate", ours[0].Operation)
	assert.Equal(t, "SQLExecDirect", ours[0].Resource)
	assert.Equal(t, "pgconn", ours[0].SubResource)
	assert.Equal(t, "23505", ours[0].Metadata["sqlstate"])
	assert.Equal(t, "IntegrityError", ours[0].Metadata["kind"])
	assert.Equal(t, "gorm", ours[1].SubResource)
	assert.Equal(t, "02000", ours[1].Metadata["sqlstate"])

	assert.Len(t, obs.GetOperations(), 2, "one observation per translated failure")
}

// ── setup ─────────────────────────────────────────────────────────────────────

func TestConnectionString(t *testing.T) {
	t.Parallel()
	dsn := connectionString(Connection{
		Host: "db", Port: "5432", User: "app", Password: "secret", DbName: "orders", SSLMode: "disable",
	})
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=orders sslmode=disable", dsn)
}

func TestFXModule(t *testing.T) {
	t.Parallel()
	var tr ErrorTranslator
	app := fxtest.New(t,
		FXModule,
		fx.Provide(func() Config { return Config{Diagnostics: sqlerr.Config{RecordSeparator: " | "}} }),
		fx.Populate(&tr),
	)
	app.RequireStart()
	defer app.RequireStop()

	err := tr.TranslateError("SQLExecute", errors.Join(
		&pgconn.PgError{Code: "23503", Message: "fk"},
		&pgconn.PgError{Code: "23000", Message: "constraint"},
	))
	assert.Equal(t, "SQLExecute: [23503] fk (0) | [23000] constraint (0)", err.Error())
}
