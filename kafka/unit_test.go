package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/aalemi-dev/odbcerr/sqlerr"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWriter records written messages.
type fakeWriter struct {
	mu      sync.Mutex
	msgs    []kafka.Message
	writes  int
	err     error
	closed  bool
	blockCh chan struct{}
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.blockCh != nil {
		<-w.blockCh
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writes++
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWriter) messages() []kafka.Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]kafka.Message(nil), w.msgs...)
}

type testLogger struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (l *testLogger) InfoWithContext(_ context.Context, msg string, _ error, _ ...map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *testLogger) WarnWithContext(context.Context, string, error, ...map[string]interface{}) {}

func (l *testLogger) ErrorWithContext(_ context.Context, msg string, _ error, _ ...map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *testLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

func duplicateKey() *sqlerr.Error {
	return sqlerr.NewFactory(sqlerr.Config{}, nil).FromRecords("SQLExecute", []sqlerr.DiagnosticRecord{
		sqlerr.NewRecord("23505", 1062, "duplicate key"),
	})
}

func translateOp(err error) observability.OperationContext {
	return observability.OperationContext{
		Component:   "postgres",
		Operation:   "translate",
		Resource:    "SQLExecute",
		SubResource: "pgconn",
		Duration:    1500 * time.Microsecond,
		Error:       err,
		Size:        1,
	}
}

func fixedClock(p *Publisher) *Publisher {
	p.now = func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.FixedZone("CET", 3600)) }
	return p
}

// ==================== event.go ====================

func TestNewErrorEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 15, 4, 5, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		name   string
		op     observability.OperationContext
		ok     bool
		expect func(t *testing.T, ev ErrorEvent)
	}{
		{
			name: "driver translation",
			op:   translateOp(fmt.Errorf("save order: %w", duplicateKey())),
			ok:   true,
			expect: func(t *testing.T, ev ErrorEvent) {
				assert.Equal(t, now.UTC(), ev.Time)
				assert.Equal(t, "orders", ev.Service)
				assert.Equal(t, "postgres", ev.Component)
				assert.Equal(t, "translate", ev.Operation)
				assert.Equal(t, "SQLExecute", ev.Function)
				assert.Equal(t, "pgconn", ev.Source)
				assert.Equal(t, "23505", ev.SQLState)
				assert.Equal(t, "23", ev.Class)
				assert.Equal(t, "IntegrityError", ev.Kind)
				require.NotNil(t, ev.NativeCode)
				assert.Equal(t, int32(1062), *ev.NativeCode)
				assert.Equal(t, 1, ev.Records)
				assert.Contains(t, ev.Message, "duplicate key")
				assert.Equal(t, int64(1500), ev.DurationUS)
			},
		},
		{
			name: "factory construction drops the class sub-resource",
			op: observability.OperationContext{
				Component:   sqlerr.Component,
				Operation:   "from_template",
				SubResource: "HY",
				Error:       sqlerr.Newf("HYT00", "timed out"),
			},
			ok: true,
			expect: func(t *testing.T, ev ErrorEvent) {
				assert.Empty(t, ev.Source)
				assert.Equal(t, "HYT00", ev.SQLState)
				assert.Equal(t, "OperationalError", ev.Kind)
				assert.Nil(t, ev.NativeCode)
				assert.Zero(t, ev.Records)
			},
		},
		{
			name: "probe without error",
			op:   observability.OperationContext{Component: sqlerr.Component, Operation: "has_sqlstate"},
		},
		{
			name: "unclassified error",
			op:   translateOp(errors.New("plain")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ev, ok := NewErrorEvent(tt.op, "orders", now)
			assert.Equal(t, tt.ok, ok)
			if tt.expect != nil {
				tt.expect(t, ev)
			}
		})
	}
}

func TestErrorEvent_Message(t *testing.T) {
	t.Parallel()

	ev, ok := NewErrorEvent(translateOp(duplicateKey()), "orders", time.Unix(0, 0))
	require.True(t, ok)

	msg, err := ev.message()
	require.NoError(t, err)
	assert.Equal(t, []byte("23505"), msg.Key)
	assert.Equal(t, []kafka.Header{
		{Key: HeaderKind, Value: []byte("IntegrityError")},
		{Key: HeaderComponent, Value: []byte("postgres")},
	}, msg.Headers)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "23505", decoded["sqlstate"])
	assert.Equal(t, float64(1062), decoded["native_code"])
	assert.Equal(t, "pgconn", decoded["source"])
}

func TestErrorEvent_MessageOmitsNativeCode(t *testing.T) {
	t.Parallel()

	ev, ok := NewErrorEvent(observability.OperationContext{
		Component: sqlerr.Component,
		Operation: "from_template",
		Error:     sqlerr.Newf("", "boom"),
	}, "", time.Unix(0, 0))
	require.True(t, ok)

	msg, err := ev.message()
	require.NoError(t, err)
	assert.NotContains(t, string(msg.Value), "native_code")
	assert.NotContains(t, string(msg.Value), "service")
	assert.Contains(t, string(msg.Value), `"sqlstate":"HY000"`)
}

// ==================== publisher.go ====================

func TestPublisher_BatchesObservedErrors(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := fixedClock(NewPublisherWithWriter(Config{Topic: "sql-errors", Service: "orders", BatchSize: 2, BatchTimeout: time.Hour}, w))
	require.NoError(t, p.Start(context.Background()))

	p.ObserveOperation(translateOp(duplicateKey()))
	p.ObserveOperation(observability.OperationContext{Component: sqlerr.Component, Operation: "has_sqlstate"})
	p.ObserveOperation(translateOp(sqlerr.Newf("40001", "deadlock")))

	require.Eventually(t, func() bool { return len(w.messages()) == 2 }, 2*time.Second, 5*time.Millisecond)

	msgs := w.messages()
	assert.Equal(t, "23505", string(msgs[0].Key))
	assert.Equal(t, "40001", string(msgs[1].Key))
	assert.Equal(t, Stats{Published: 2}, p.Stats())

	require.NoError(t, p.Close(context.Background()))
	assert.True(t, w.closed)
}

func TestPublisher_FlushesOnTimeout(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := NewPublisherWithWriter(Config{Topic: "t", BatchSize: 100, BatchTimeout: 10 * time.Millisecond}, w)
	require.NoError(t, p.Start(context.Background()))
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	p.ObserveOperation(translateOp(duplicateKey()))

	require.Eventually(t, func() bool { return len(w.messages()) == 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestPublisher_CloseFlushesQueue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start bool
	}{
		{name: "started", start: true},
		{name: "never started", start: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := &fakeWriter{}
			p := NewPublisherWithWriter(Config{Topic: "t", BatchSize: 2, BatchTimeout: time.Hour}, w)
			if tt.start {
				require.NoError(t, p.Start(context.Background()))
			}
			for i := 0; i < 5; i++ {
				p.ObserveOperation(translateOp(duplicateKey()))
			}

			require.NoError(t, p.Close(context.Background()))
			assert.Len(t, w.messages(), 5)
			assert.Equal(t, int64(5), p.Stats().Published)
			assert.True(t, w.closed)
		})
	}
}

func TestPublisher_OperationsFilter(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := NewPublisherWithWriter(Config{Topic: "t", Operations: []string{"translate"}}, w)

	p.ObserveOperation(translateOp(duplicateKey()))
	p.ObserveOperation(observability.OperationContext{
		Component: sqlerr.Component,
		Operation: "from_records",
		Error:     duplicateKey(),
	})

	require.NoError(t, p.Close(context.Background()))
	msgs := w.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []byte("postgres"), msgs[0].Headers[1].Value)
}

func TestPublisher_DropsWhenFull(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := NewPublisherWithWriter(Config{Topic: "t", BufferSize: 2}, w)

	for i := 0; i < 5; i++ {
		p.ObserveOperation(translateOp(duplicateKey()))
	}
	assert.Equal(t, int64(3), p.Stats().Dropped)

	require.NoError(t, p.Close(context.Background()))
	assert.Len(t, w.messages(), 2)

	p.ObserveOperation(translateOp(duplicateKey()))
	assert.Equal(t, int64(4), p.Stats().Dropped)
}

func TestPublisher_WriteFailureIsLogged(t *testing.T) {
	t.Parallel()

	log := &testLogger{}
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewPublisherWithWriter(Config{Topic: "t", BatchSize: 1}, w).WithLogger(log)
	require.NoError(t, p.Start(context.Background()))

	p.ObserveOperation(translateOp(duplicateKey()))

	require.Eventually(t, func() bool { return log.errorCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, p.Close(context.Background()))

	assert.Equal(t, Stats{Failed: 1}, p.Stats())
	assert.Equal(t, []string{"Failed to publish error events"}, log.errors)
	assert.Equal(t, []string{"Kafka error publisher started", "Kafka error publisher closed"}, log.infos)
}

func TestPublisher_CloseHonoursContext(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{blockCh: make(chan struct{})}
	p := NewPublisherWithWriter(Config{Topic: "t", BatchSize: 1}, w)
	require.NoError(t, p.Start(context.Background()))
	p.ObserveOperation(translateOp(duplicateKey()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Close(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, w.closed)

	close(w.blockCh)
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := NewPublisherWithWriter(Config{Topic: "t"}, w)

	ev, ok := NewErrorEvent(translateOp(duplicateKey()), "", time.Now())
	require.True(t, ok)

	require.NoError(t, p.Publish(context.Background()))
	require.NoError(t, p.Publish(context.Background(), ev, ev))
	assert.Len(t, w.messages(), 2)
	assert.Equal(t, 1, w.writes)

	require.NoError(t, p.Close(context.Background()))
	assert.ErrorIs(t, p.Publish(context.Background(), ev), ErrClosed)
	assert.ErrorIs(t, p.Start(context.Background()), ErrClosed)
}

func TestPublisher_NilObserver(t *testing.T) {
	t.Parallel()

	var p *Publisher
	assert.NotPanics(t, func() { p.ObserveOperation(translateOp(duplicateKey())) })
}

func TestPublisher_AsObserver(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := NewPublisherWithWriter(Config{Topic: "t"}, w)

	f := sqlerr.NewFactory(sqlerr.Config{}, nil).WithObserver(observability.Multi{observability.NewNoOpObserver(), p})
	_ = f.FromTemplate("08S01", nil, "link failure")

	require.NoError(t, p.Close(context.Background()))
	msgs := w.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "08S01", string(msgs[0].Key))
	assert.Equal(t, []byte("OperationalError"), msgs[0].Headers[0].Value)
}

// ==================== setup.go ====================

func TestNewPublisher_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		err  string
	}{
		{name: "no brokers", cfg: Config{Topic: "t"}, err: "no brokers"},
		{name: "no topic", cfg: Config{Brokers: []string{"localhost:9092"}}, err: "no topic"},
		{
			name: "tls error",
			cfg:  Config{Brokers: []string{"localhost:9092"}, Topic: "t", TLS: TLSConfig{Enabled: true, CACertPath: "/nonexistent/ca.crt"}},
			err:  "failed to create TLS config",
		},
		{
			name: "sasl error",
			cfg:  Config{Brokers: []string{"localhost:9092"}, Topic: "t", SASL: SASLConfig{Enabled: true, Mechanism: "UNSUPPORTED"}},
			err:  "failed to create SASL mechanism",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewPublisher(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestNewPublisher_Defaults(t *testing.T) {
	t.Parallel()

	p, err := NewPublisher(Config{Brokers: []string{"localhost:9092"}, Topic: "sql-errors"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	assert.Equal(t, "sql-errors", p.Topic())
	assert.Equal(t, DefaultRequiredAcks, p.cfg.RequiredAcks)
	assert.Equal(t, DefaultWriteTimeout, p.cfg.WriteTimeout)
	assert.Equal(t, DefaultBatchSize, p.cfg.BatchSize)
	assert.Equal(t, DefaultBatchTimeout, p.cfg.BatchTimeout)
	assert.Equal(t, DefaultMaxAttempts, p.cfg.MaxAttempts)
	assert.Equal(t, DefaultBufferSize, cap(p.queue))

	kw, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "sql-errors", kw.Topic)
}

func TestCreateTLSConfig(t *testing.T) {
	t.Parallel()

	t.Run("insecure skip verify", func(t *testing.T) {
		t.Parallel()
		tlsCfg, err := createTLSConfig(TLSConfig{InsecureSkipVerify: true})
		require.NoError(t, err)
		assert.True(t, tlsCfg.InsecureSkipVerify)
	})

	t.Run("missing CA cert file", func(t *testing.T) {
		t.Parallel()
		_, err := createTLSConfig(TLSConfig{CACertPath: "/nonexistent/ca.crt"})
		assert.Error(t, err)
	})

	t.Run("missing client cert file", func(t *testing.T) {
		t.Parallel()
		_, err := createTLSConfig(TLSConfig{ClientCertPath: "/nonexistent/client.crt", ClientKeyPath: "/nonexistent/client.key"})
		assert.Error(t, err)
	})
}

func TestCreateSASLMechanism(t *testing.T) {
	t.Parallel()

	for _, mechanism := range []string{"PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512"} {
		t.Run(mechanism, func(t *testing.T) {
			t.Parallel()
			m, err := createSASLMechanism(SASLConfig{Mechanism: mechanism, Username: "u", Password: "p"})
			require.NoError(t, err)
			assert.Equal(t, mechanism, m.Name())
		})
	}

	t.Run("unsupported mechanism", func(t *testing.T) {
		t.Parallel()
		_, err := createSASLMechanism(SASLConfig{Mechanism: "GSSAPI"})
		assert.Error(t, err)
	})
}

func TestCreateErrorLogger(t *testing.T) {
	t.Parallel()

	t.Run("with logger", func(t *testing.T) {
		t.Parallel()
		log := &testLogger{}
		p := newPublisher(applyDefaults(Config{})).WithLogger(log)
		createErrorLogger(p)("something went wrong: %s", "detail")
		assert.Equal(t, 1, log.errorCount())
	})

	t.Run("without logger no-op", func(t *testing.T) {
		t.Parallel()
		p := newPublisher(applyDefaults(Config{}))
		assert.NotPanics(t, func() { createErrorLogger(p)("no logger here") })
	})
}

func TestCreateWriter_Compression(t *testing.T) {
	t.Parallel()

	for _, codec := range []string{"gzip", "snappy", "lz4", "zstd", ""} {
		t.Run("codec="+codec, func(t *testing.T) {
			t.Parallel()
			cfg := applyDefaults(Config{
				Brokers:          []string{"localhost:9092"},
				Topic:            "test",
				CompressionCodec: codec,
			})
			w := createWriter(cfg, nil, nil, newPublisher(cfg))
			require.NotNil(t, w)
			assert.Equal(t, cfg.BatchSize, w.BatchSize)
			_ = w.Close()
		})
	}
}
