package messaging

import (
	"context"
)

// Publisher defines the interface for publishing marketplace events to the
// message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a marketplace event to the message broker
	PublishEvent(ctx context.Context, event *MarketplaceEvent) error
	// Close closes the connection
	Close()
}
