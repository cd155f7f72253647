package kafka

import (
	"context"
	"time"

	"github.com/aalemi-dev/odbcerr/observability"
	"github.com/segmentio/kafka-go"
)

// ObserveOperation queues an event for operations that produced a classified
// error. Probes and successful operations are ignored.
func (p *Publisher) ObserveOperation(op observability.OperationContext) {
	if p == nil {
		return
	}
	if p.ops != nil {
		if _, ok := p.ops[op.Operation]; !ok {
			return
		}
	}
	ev, ok := NewErrorEvent(op, p.cfg.Service, p.now())
	if !ok {
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.dropped.Add(1)
		return
	}
	select {
	case p.queue <- ev:
	default:
		p.dropped.Add(1)
	}
}

// Publish writes events synchronously, bypassing the queue.
func (p *Publisher) Publish(ctx context.Context, events ...ErrorEvent) error {
	if len(events) == 0 {
		return nil
	}
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return ErrClosed
	}
	return p.write(ctx, events)
}

func (p *Publisher) write(ctx context.Context, events []ErrorEvent) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		msg, err := ev.message()
		if err != nil {
			p.failed.Add(1)
			p.logError(ctx, "Failed to encode error event", err, map[string]interface{}{
				"sqlstate": ev.SQLState,
			})
			continue
		}
		msgs = append(msgs, msg)
	}
	if len(msgs) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.failed.Add(int64(len(msgs)))
		return err
	}
	p.published.Add(int64(len(msgs)))
	return nil
}

func (p *Publisher) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.cfg.BatchTimeout)
	defer ticker.Stop()

	batch := make([]ErrorEvent, 0, p.cfg.BatchSize)
	for {
		select {
		case ev := <-p.queue:
			batch = append(batch, ev)
			if len(batch) >= p.cfg.BatchSize {
				p.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				p.flush(batch)
				batch = batch[:0]
			}
		case <-p.done:
			p.flush(p.drain(batch))
			return
		}
	}
}

// drain appends whatever is left in the queue without blocking.
func (p *Publisher) drain(batch []ErrorEvent) []ErrorEvent {
	for {
		select {
		case ev := <-p.queue:
			batch = append(batch, ev)
		default:
			return batch
		}
	}
}

// flush writes events in chunks of BatchSize. Failures are logged, not retried;
// the kafka-go writer already retries up to MaxAttempts.
func (p *Publisher) flush(events []ErrorEvent) {
	ctx := context.Background()
	for len(events) > 0 {
		n := min(len(events), p.cfg.BatchSize)
		if err := p.write(ctx, events[:n]); err != nil {
			p.logError(ctx, "Failed to publish error events", err, map[string]interface{}{
				"topic": p.cfg.Topic,
				"count": n,
			})
		}
		events = events[n:]
	}
}

func (p *Publisher) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (p *Publisher) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
