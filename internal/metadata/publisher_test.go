package metadata_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/gateway"
	"github.com/openmint/marketplace/internal/logger"
	"github.com/openmint/marketplace/internal/metadata"
	"github.com/openmint/marketplace/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestPublisher(t *testing.T) (metadata.Publisher, *mocks.MockGatewayClient) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	gw := mocks.NewMockGatewayClient(ctrl)
	return metadata.NewGatewayPublisher(gw), gw
}

func TestPublish(t *testing.T) {
	publisher, gw := newTestPublisher(t)

	doc := domain.TokenMetadata{
		Name:        "Sunset",
		Description: "Oil on canvas",
		Image:       "https://images.example.com/sunset",
	}

	gw.EXPECT().PublishMetadata(gomock.Any(), doc).Return(&gateway.MetadataDocument{
		ID:  "01J9Z0000000000000000000AA",
		URL: "http://localhost:8080/api/v1/metadata/01J9Z0000000000000000000AA",
	}, nil)

	url, err := publisher.Publish(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1/metadata/01J9Z0000000000000000000AA", url)
}

func TestPublish_Incomplete(t *testing.T) {
	publisher, _ := newTestPublisher(t)

	tests := []struct {
		name     string
		metadata domain.TokenMetadata
	}{
		{"missing name", domain.TokenMetadata{Image: "https://images.example.com/x"}},
		{"missing image", domain.TokenMetadata{Name: "Untitled"}},
		{"empty", domain.TokenMetadata{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := publisher.Publish(context.Background(), tt.metadata)
			assert.ErrorIs(t, err, metadata.ErrIncompleteMetadata)
		})
	}
}

func TestPublish_GatewayError(t *testing.T) {
	publisher, gw := newTestPublisher(t)

	gw.EXPECT().PublishMetadata(gomock.Any(), gomock.Any()).Return(nil, errors.New("gateway unavailable"))

	_, err := publisher.Publish(context.Background(), domain.TokenMetadata{
		Name:  "Sunset",
		Image: "https://images.example.com/sunset",
	})
	assert.Error(t, err)
}

func TestPublish_EmptyURL(t *testing.T) {
	publisher, gw := newTestPublisher(t)

	gw.EXPECT().PublishMetadata(gomock.Any(), gomock.Any()).Return(&gateway.MetadataDocument{ID: "x"}, nil)

	_, err := publisher.Publish(context.Background(), domain.TokenMetadata{
		Name:  "Sunset",
		Image: "https://images.example.com/sunset",
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, metadata.ErrIncompleteMetadata)
}
