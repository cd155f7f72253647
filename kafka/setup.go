package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// ErrClosed is returned by Start and Publish once the publisher is closed.
var ErrClosed = errors.New("kafka: publisher closed")

// MessageWriter is the subset of *kafka.Writer used by the publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher ships classified SQL errors to a Kafka topic as JSON events.
//
// It implements observability.Observer: ObserveOperation never blocks the
// caller. Events are queued and written in batches by a background goroutine
// started with Start. When the queue is full new events are dropped and
// counted in Stats.
type Publisher struct {
	cfg    Config
	writer MessageWriter
	logger Logger
	ops    map[string]struct{}
	now    func() time.Time

	queue chan ErrorEvent
	done  chan struct{}
	wg    sync.WaitGroup

	mu        sync.RWMutex
	started   bool
	closed    bool
	closeOnce sync.Once
	closeErr  error

	published atomic.Int64
	dropped   atomic.Int64
	failed    atomic.Int64
}

// Stats are the publisher delivery counters.
type Stats struct {
	Published int64
	Dropped   int64
	Failed    int64
}

// NewPublisher creates a publisher backed by a kafka-go writer.
//
// The writer connects lazily, so no broker needs to be reachable here. Call
// Start to begin shipping events and Close to flush and release the writer.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg = applyDefaults(cfg)
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: no topic configured")
	}

	var tlsConfig *tls.Config
	if cfg.TLS.Enabled {
		var err error
		tlsConfig, err = createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	var mechanism sasl.Mechanism
	if cfg.SASL.Enabled {
		var err error
		mechanism, err = createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
	}

	p := newPublisher(cfg)
	p.writer = createWriter(cfg, tlsConfig, mechanism, p)
	return p, nil
}

// NewPublisherWithWriter creates a publisher that writes through w.
func NewPublisherWithWriter(cfg Config, w MessageWriter) *Publisher {
	p := newPublisher(applyDefaults(cfg))
	p.writer = w
	return p
}

func newPublisher(cfg Config) *Publisher {
	p := &Publisher{
		cfg:   cfg,
		now:   time.Now,
		queue: make(chan ErrorEvent, cfg.BufferSize),
		done:  make(chan struct{}),
	}
	if len(cfg.Operations) > 0 {
		p.ops = make(map[string]struct{}, len(cfg.Operations))
		for _, op := range cfg.Operations {
			p.ops[op] = struct{}{}
		}
	}
	return p
}

// WithLogger sets the logger. It must be called before Start.
func (p *Publisher) WithLogger(logger Logger) *Publisher {
	p.logger = logger
	return p
}

// Topic returns the destination topic.
func (p *Publisher) Topic() string {
	return p.cfg.Topic
}

// Stats returns a snapshot of the delivery counters.
func (p *Publisher) Stats() Stats {
	return Stats{
		Published: p.published.Load(),
		Dropped:   p.dropped.Load(),
		Failed:    p.failed.Load(),
	}
}

// Start launches the batching goroutine. Calling it twice is a no-op.
func (p *Publisher) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.started {
		return nil
	}
	p.started = true
	p.wg.Add(1)
	go p.run()

	p.logInfo(ctx, "Kafka error publisher started", map[string]interface{}{
		"topic":      p.cfg.Topic,
		"batch_size": p.cfg.BatchSize,
	})
	return nil
}

// Close stops accepting events, flushes the queue and closes the writer.
// If ctx expires before the flush completes, Close returns ctx.Err() and
// leaves the writer open.
func (p *Publisher) Close(ctx context.Context) error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		started := p.started
		p.mu.Unlock()

		if started {
			close(p.done)
			flushed := make(chan struct{})
			go func() {
				p.wg.Wait()
				close(flushed)
			}()
			select {
			case <-flushed:
			case <-ctx.Done():
				p.closeErr = ctx.Err()
				return
			}
		} else {
			p.flush(p.drain(nil))
		}

		if err := p.writer.Close(); err != nil {
			p.closeErr = fmt.Errorf("failed to close kafka writer: %w", err)
			return
		}
		p.logInfo(ctx, "Kafka error publisher closed", map[string]interface{}{
			"published": p.published.Load(),
			"dropped":   p.dropped.Load(),
			"failed":    p.failed.Load(),
		})
	})
	return p.closeErr
}

// createWriter creates a Kafka writer with the given configuration
func createWriter(cfg Config, tlsConfig *tls.Config, mechanism sasl.Mechanism, p *Publisher) *kafka.Writer {
	writerConfig := kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: cfg.RequiredAcks,
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		ErrorLogger:  createErrorLogger(p),
	}

	switch cfg.CompressionCodec {
	case "gzip":
		writerConfig.CompressionCodec = &compress.GzipCodec
	case "snappy":
		writerConfig.CompressionCodec = &compress.SnappyCodec
	case "lz4":
		writerConfig.CompressionCodec = &compress.Lz4Codec
	case "zstd":
		writerConfig.CompressionCodec = &compress.ZstdCodec
	}

	writerConfig.Dialer = &kafka.Dialer{
		Timeout:       cfg.WriteTimeout,
		TLS:           tlsConfig,
		SASLMechanism: mechanism,
	}

	return kafka.NewWriter(writerConfig)
}

// createErrorLogger routes kafka-go internal errors to the publisher logger.
func createErrorLogger(p *Publisher) kafka.LoggerFunc {
	return func(msg string, args ...interface{}) {
		if p.logger == nil {
			return
		}
		formatted := msg
		if len(args) > 0 {
			formatted = fmt.Sprintf(msg, args...)
		}
		p.logger.ErrorWithContext(context.Background(), "Kafka internal error", nil, map[string]interface{}{
			"error": formatted,
		})
	}
}

// createTLSConfig creates a TLS configuration from the provided config
func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// createSASLMechanism creates a SASL mechanism from the provided config
func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}
