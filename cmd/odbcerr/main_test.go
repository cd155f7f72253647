package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/jessevdk/go-flags"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aalemi-dev/odbcerr/kafka"
	"github.com/aalemi-dev/odbcerr/sqlerr"
)

func runArgs(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var opts options
	p := flags.NewParser(&opts, flags.PassDoubleDash|flags.HelpFlag)
	_, err := p.ParseArgs(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = run(context.Background(), p, opts, &out)
	return out.String(), err
}

func TestClassify(t *testing.T) {
	t.Parallel()
	out, err := runArgs(t, "classify", "23505", "hyt00", "01004")
	require.NoError(t, err)

	var got []classification
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)

	assert.Equal(t, classification{
		Input:     "23505",
		SQLState:  "23505",
		Class:     "23",
		Kind:      "IntegrityError",
		Hierarchy: []string{"IntegrityError", "DatabaseError", "Error"},
	}, got[0])

	assert.Equal(t, "HYT00", got[1].SQLState)
	assert.Equal(t, "OperationalError", got[1].Kind)
	assert.True(t, got[1].Retryable)
	assert.True(t, got[1].Timeout)

	assert.Equal(t, []string{"Warning"}, got[2].Hierarchy)
}

func TestClassify_MalformedStates(t *testing.T) {
	t.Parallel()
	out, err := runArgs(t, "classify", "2350", "08S01", "ABC!!")
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)
	assert.Contains(t, err.Error(), `"2350" is not a SQLSTATE, classified as HY000`)

	var got []classification
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "HY000", got[0].SQLState)
	assert.Equal(t, "Error", got[0].Kind)
	assert.True(t, got[1].ConnectionLost)
}

func TestTable(t *testing.T) {
	t.Parallel()
	out, err := runArgs(t, "table")
	require.NoError(t, err)

	var got []map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got)
	assert.Equal(t, map[string]string{"prefix": "0A000", "kind": "NotSupportedError"}, got[0])
	assert.Equal(t, map[string]string{"prefix": "*", "kind": "Error"}, got[len(got)-1])
	assert.Contains(t, got, map[string]string{"prefix": "23", "kind": "IntegrityError"})
}

func TestProbe_SQLite(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		query string
		want  probeResult
	}{
		{
			name:  "ok",
			query: "CREATE TABLE t (id INTEGER PRIMARY KEY)",
			want:  probeResult{Driver: "sqlite", OK: true},
		},
		{
			name:  "missing table",
			query: "SELECT * FROM missing",
			want: probeResult{
				Driver:   "sqlite",
				Function: "SQLExecDirect",
				SQLState: "42000",
				Kind:     "ProgrammingError",
				Records:  1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := runArgs(t, "probe", tt.query)
			require.NoError(t, err)

			var got probeResult
			require.NoError(t, yaml.Unmarshal([]byte(out), &got))
			if !tt.want.OK {
				assert.NotNil(t, got.NativeCode)
				assert.Contains(t, got.Message, "no such table: missing")
				got.NativeCode, got.Message = nil, ""
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProbe_ConfigFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "odbcerr.yml")
	cfg := `
logger:
  level: error
sqlite:
  foreign_keys: true
  diagnostics:
    record_separator: " | "
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	loaded, err := loadConfig(path)
	require.NoError(t, err)
	assert.True(t, loaded.SQLite.ForeignKeys)
	assert.Equal(t, " | ", loaded.SQLite.Diagnostics.RecordSeparator)
	assert.Equal(t, "error", loaded.Logger.Level)

	out, err := runArgs(t, "--config", path, "probe", "--driver", "sqlite", "SELEC 1")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlstate: \"42000\"")
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "can't read config")

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("sqlite: [1, 2"), 0o600))
	_, err = loadConfig(path)
	assert.ErrorContains(t, err, "can't parse config")
}

type recordingWriter struct {
	msgs   []kafkago.Message
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestReport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("classified failure is published", func(t *testing.T) {
		t.Parallel()
		w := &recordingWriter{}
		pub := kafka.NewPublisherWithWriter(kafka.Config{Brokers: []string{"localhost:9092"}, Topic: "db-errors"}, w)

		require.NoError(t, report(ctx, pub, "orders", "sqlite", sqlerr.Newf("42000", "near \"SELEC\": syntax error")))
		require.Len(t, w.msgs, 1)
		assert.True(t, w.closed)
		assert.Equal(t, "42000", string(w.msgs[0].Key))

		var ev kafka.ErrorEvent
		require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
		assert.Equal(t, "orders", ev.Service)
		assert.Equal(t, "sqlite", ev.Component)
		assert.Equal(t, "probe", ev.Operation)
		assert.Equal(t, "ProgrammingError", ev.Kind)
	})

	t.Run("unclassified failure only closes", func(t *testing.T) {
		t.Parallel()
		w := &recordingWriter{}
		pub := kafka.NewPublisherWithWriter(kafka.Config{Brokers: []string{"localhost:9092"}, Topic: "db-errors"}, w)

		require.NoError(t, report(ctx, pub, "", "sqlite", errors.New("boom")))
		assert.Empty(t, w.msgs)
		assert.True(t, w.closed)
	})
}

func TestLoadConfig_Kafka(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "odbcerr.yml")
	cfg := `
kafka:
  brokers: ["broker-1:9092", "broker-2:9092"]
  topic: db-errors
  service: orders
`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	loaded, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, loaded.Kafka.Brokers)
	assert.Equal(t, "db-errors", loaded.Kafka.Topic)
	assert.Equal(t, "orders", loaded.Kafka.Service)
}
