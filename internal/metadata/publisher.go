package metadata

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/gateway"
	"github.com/openmint/marketplace/internal/logger"
)

// ErrIncompleteMetadata is returned when a metadata document is missing its
// name or image
var ErrIncompleteMetadata = errors.New("metadata requires a name and an image URL")

// Publisher publishes token metadata documents and returns the URL that
// becomes the on-chain tokenURI
//
//go:generate mockgen -source=publisher.go -destination=../mocks/metadata.go -package=mocks -mock_names=Publisher=MockMetadataPublisher
type Publisher interface {
	// Publish stores the metadata document and returns its public URL
	Publish(ctx context.Context, metadata domain.TokenMetadata) (string, error)
}

// gatewayPublisher implements Publisher on the persistence gateway
type gatewayPublisher struct {
	gateway gateway.Client
}

// NewGatewayPublisher creates a Publisher backed by the persistence gateway
func NewGatewayPublisher(gw gateway.Client) Publisher {
	return &gatewayPublisher{gateway: gw}
}

// Publish stores the metadata document and returns its public URL
func (p *gatewayPublisher) Publish(ctx context.Context, metadata domain.TokenMetadata) (string, error) {
	if metadata.Name == "" || metadata.Image == "" {
		return "", ErrIncompleteMetadata
	}

	doc, err := p.gateway.PublishMetadata(ctx, metadata)
	if err != nil {
		return "", fmt.Errorf("failed to publish metadata: %w", err)
	}
	if doc.URL == "" {
		return "", errors.New("gateway returned an empty metadata URL")
	}

	logger.InfoCtx(ctx, "Published token metadata",
		zap.String("id", doc.ID),
		zap.String("url", doc.URL))

	return doc.URL, nil
}
