package kafka

import (
	"github.com/aalemi-dev/odbcerr/logger"
	"go.uber.org/fx"
)

// FXModule provides the error event publisher and ties it to the application
// lifecycle: the batching goroutine starts with the application and the queue
// is flushed on stop.
//
// The module provides *Publisher only. To receive events, attach it as an
// observer, for instance next to the metrics observer:
//
//	fx.Provide(func(m *metrics.ErrorObserver, p *kafka.Publisher) observability.Observer {
//	    return observability.Multi{m, p}
//	})
//
// Dependencies:
//   - kafka.Config (required)
//   - logger.Logger (optional)
var FXModule = fx.Module("kafka",
	fx.Provide(NewPublisherWithDI),
	fx.Invoke(RegisterPublisherLifecycle),
)

// PublisherParams groups the dependencies needed to create a Publisher.
type PublisherParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewPublisherWithDI creates a Publisher from injected dependencies.
func NewPublisherWithDI(params PublisherParams) (*Publisher, error) {
	p, err := NewPublisher(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		p.WithLogger(params.Logger)
	}
	return p, nil
}

// PublisherLifeCycleParams groups the dependencies for lifecycle management.
type PublisherLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Publisher *Publisher
}

// RegisterPublisherLifecycle starts the publisher on application start and
// flushes it on stop.
func RegisterPublisherLifecycle(params PublisherLifeCycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: params.Publisher.Start,
		OnStop:  params.Publisher.Close,
	})
}
