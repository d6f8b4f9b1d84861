package messaging

import (
	"context"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/openmint/marketplace/internal/logger"
)

// asyncPublisher decouples event publishing from the request path. Publishes
// are handed to a worker pool and delivered in the background; a failed
// publish is logged, never surfaced to the caller. Events are best-effort by
// contract: the database commit is the source of truth.
type asyncPublisher struct {
	inner Publisher
	pool  pond.Pool
}

// NewAsyncPublisher wraps a publisher with a worker pool so PublishEvent
// returns immediately
func NewAsyncPublisher(inner Publisher, workers int) Publisher {
	return &asyncPublisher{
		inner: inner,
		pool:  pond.NewPool(workers),
	}
}

// PublishEvent enqueues the event for background delivery. The returned error
// is always nil; delivery failures are logged.
func (p *asyncPublisher) PublishEvent(_ context.Context, event *MarketplaceEvent) error {
	p.pool.Submit(func() {
		// Detached from the request context: the event must still go out
		// after the HTTP response is written.
		if err := p.inner.PublishEvent(context.Background(), event); err != nil {
			logger.Error(err,
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.EventType)))
		}
	})
	return nil
}

// Close drains pending publishes, then closes the inner publisher
func (p *asyncPublisher) Close() {
	p.pool.StopAndWait()
	p.inner.Close()
}
