package metrics_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aalemi-dev/odbcerr/metrics"
	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/aalemi-dev/odbcerr/sqlerr"
	"github.com/aalemi-dev/odbcerr/sqlite"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplicationMetrics(t *testing.T) *metrics.Metrics {
	t.Helper()
	m := metrics.NewMetrics(metrics.Config{
		SystemMetricsAddress:      metrics.Ptr(""),
		ApplicationMetricsAddress: metrics.Ptr(":0"),
		ServiceName:               "test",
	})
	require.NotNil(t, m.ApplicationRegistry)
	return m
}

func TestNewMetrics_Endpoints(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		cfg         metrics.Config
		system, app bool
	}{
		{"defaults", metrics.Config{}, true, true},
		{"system disabled", metrics.Config{SystemMetricsAddress: metrics.Ptr("")}, false, true},
		{"application disabled", metrics.Config{ApplicationMetricsAddress: metrics.Ptr("")}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := metrics.NewMetrics(tt.cfg)
			assert.Equal(t, tt.system, m.SystemServer != nil)
			assert.Equal(t, tt.system, m.SystemRegistry != nil)
			assert.Equal(t, tt.app, m.ApplicationServer != nil)
			assert.Equal(t, tt.app, m.ApplicationRegistry != nil)
		})
	}

	m := metrics.NewMetrics(metrics.Config{})
	assert.Equal(t, metrics.DefaultSystemMetricsAddress, m.SystemServer.Addr)
	assert.Equal(t, metrics.DefaultApplicationMetricsAddress, m.ApplicationServer.Addr)
}

func TestCreateMetrics_DisabledEndpointDoesNotPanic(t *testing.T) {
	t.Parallel()
	m := metrics.NewMetrics(metrics.Config{ApplicationMetricsAddress: metrics.Ptr(""), SystemMetricsAddress: metrics.Ptr("")})
	assert.NotPanics(t, func() {
		m.CreateCounter("c_total", "c", []string{"l"}).WithLabelValues("x").Inc()
		m.CreateHistogram("h", "h", nil, nil).WithLabelValues().Observe(1)
		m.CreateGauge("g", "g", nil).WithLabelValues().Set(1)
	})
}

func TestCreateCounter_ServiceLabel(t *testing.T) {
	t.Parallel()
	m := newApplicationMetrics(t)
	m.CreateCounter("retries_total", "Retried statements.", []string{"sqlstate"}).WithLabelValues("40001").Add(2)

	expected := `
# HELP retries_total Retried statements.
# TYPE retries_total counter
retries_total{service="test",sqlstate="40001"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.ApplicationRegistry, strings.NewReader(expected), "retries_total"))
}

func TestErrorObserver_Constructions(t *testing.T) {
	t.Parallel()
	m := newApplicationMetrics(t)
	obs := metrics.NewErrorObserver(m, "")

	f := sqlerr.NewFactory(sqlerr.Config{}, sqlerr.AreaDriver{}).WithObserver(obs)
	area := sqlerr.NewDiagArea(
		sqlerr.NewRecord("23505", 0, "duplicate key"),
		sqlerr.NewRecord("01000", 0, "notice"),
	)
	stmt := sqlerr.StatementHandle(area)
	_ = f.FromHandles("SQLExecute", sqlerr.Pair(sqlerr.NullHandle, stmt))
	_ = f.FromTemplate("HYT00", nil, "timeout after %ds", 5)
	assert.True(t, f.StatementHasSQLState(stmt, "01000"))
	assert.False(t, f.StatementHasSQLState(stmt, "42000"))

	expected := `
# HELP odbcerr_operations_total Operations observed by component, operation, error kind and SQLSTATE class.
# TYPE odbcerr_operations_total counter
odbcerr_operations_total{component="sqlerr",kind="IntegrityError",operation="from_handles",service="test",sqlstate_class="23"} 1
odbcerr_operations_total{component="sqlerr",kind="OperationalError",operation="from_template",service="test",sqlstate_class="HY"} 1
odbcerr_operations_total{component="sqlerr",kind="none",operation="has_sqlstate",service="test",sqlstate_class="none"} 2
# HELP odbcerr_sqlstate_probes_total Statement SQLSTATE probes by probed state and result.
# TYPE odbcerr_sqlstate_probes_total counter
odbcerr_sqlstate_probes_total{result="match",service="test",sqlstate="01000"} 1
odbcerr_sqlstate_probes_total{result="miss",service="test",sqlstate="42000"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.ApplicationRegistry, strings.NewReader(expected),
		"odbcerr_operations_total", "odbcerr_sqlstate_probes_total"))

	count, err := testutil.GatherAndCount(m.ApplicationRegistry, "odbcerr_last_error_timestamp_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestErrorObserver_TranslationCountedOnce(t *testing.T) {
	t.Parallel()
	m := newApplicationMetrics(t)
	obs := metrics.NewErrorObserver(m, "")

	tr := sqlite.NewTranslator(sqlerr.Config{}).WithObserver(obs)
	require.Error(t, tr.TranslateError("SQLExecDirect", context.DeadlineExceeded))

	expected := `
# HELP odbcerr_operations_total Operations observed by component, operation, error kind and SQLSTATE class.
# TYPE odbcerr_operations_total counter
odbcerr_operations_total{component="sqlite",kind="OperationalError",operation="translate",service="test",sqlstate_class="HY"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.ApplicationRegistry, strings.NewReader(expected), "odbcerr_operations_total"))

	count, err := testutil.GatherAndCount(m.ApplicationRegistry, "odbcerr_diagnostic_records")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestErrorObserver_RecordsHistogram(t *testing.T) {
	t.Parallel()
	m := newApplicationMetrics(t)
	obs := metrics.NewErrorObserver(m, "db")

	obs.ObserveOperation(observability.OperationContext{
		Component: "postgres",
		Operation: "translate",
		Duration:  2 * time.Millisecond,
		Error:     errors.New("x"),
		Size:      3,
		Metadata:  map[string]interface{}{"sqlstate": "40001", "kind": "OperationalError"},
	})

	count, err := testutil.GatherAndCount(m.ApplicationRegistry, "db_diagnostic_records", "db_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	expected := `
# HELP db_operations_total Operations observed by component, operation, error kind and SQLSTATE class.
# TYPE db_operations_total counter
db_operations_total{component="postgres",kind="OperationalError",operation="translate",service="test",sqlstate_class="40"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.ApplicationRegistry, strings.NewReader(expected), "db_operations_total"))
}

func TestErrorObserver_Nil(t *testing.T) {
	t.Parallel()
	var obs *metrics.ErrorObserver
	assert.NotPanics(t, func() {
		obs.ObserveOperation(observability.OperationContext{Component: "sqlerr"})
	})
}

func TestApplicationServer_ServesMetrics(t *testing.T) {
	t.Parallel()
	m := newApplicationMetrics(t)
	obs := metrics.NewErrorObserver(m, "")
	_ = sqlerr.NewFactory(sqlerr.Config{}, nil).WithObserver(obs).FromTemplate("", nil, "boom")

	rec := httptest.NewRecorder()
	m.ApplicationServer.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `odbcerr_operations_total{component="sqlerr",kind="Error",operation="from_template",service="test",sqlstate_class="HY"} 1`)
}
