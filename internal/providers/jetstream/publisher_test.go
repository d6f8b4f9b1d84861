package jetstream

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/logger"
	"github.com/openmint/marketplace/internal/messaging"
	"github.com/openmint/marketplace/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testConfig() Config {
	return Config{
		URL:            "nats://localhost:4222",
		StreamName:     "MARKETPLACE_EVENTS",
		MaxReconnects:  10,
		ReconnectWait:  2 * time.Second,
		ConnectionName: "marketplace-api",
	}
}

func TestNewPublisher_CreatesStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockNC := mocks.NewMockNatsConn(ctrl)
	mockJS := mocks.NewMockJetStream(ctrl)
	mockNatsJS := mocks.NewMockNatsJetStream(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	cfg := testConfig()

	mockNatsJS.EXPECT().Connect(cfg.URL, gomock.Any()).Return(mockNC, mockJS, nil)
	mockJS.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, streamCfg jetstream.StreamConfig) (jetstream.Stream, error) {
			assert.Equal(t, "MARKETPLACE_EVENTS", streamCfg.Name)
			assert.Equal(t, []string{"marketplace.>"}, streamCfg.Subjects)
			return nil, nil
		})

	pub, err := NewPublisher(context.Background(), cfg, mockNatsJS, mockJSON)
	require.NoError(t, err)
	require.NotNil(t, pub)
}

func TestNewPublisher_ConnectError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockNatsJS := mocks.NewMockNatsJetStream(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	cfg := testConfig()
	mockNatsJS.EXPECT().Connect(cfg.URL, gomock.Any()).Return(nil, nil, errors.New("connection refused"))

	pub, err := NewPublisher(context.Background(), cfg, mockNatsJS, mockJSON)
	assert.Error(t, err)
	assert.Nil(t, pub)
}

func TestNewPublisher_StreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockNC := mocks.NewMockNatsConn(ctrl)
	mockJS := mocks.NewMockJetStream(ctrl)
	mockNatsJS := mocks.NewMockNatsJetStream(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	cfg := testConfig()
	mockNatsJS.EXPECT().Connect(cfg.URL, gomock.Any()).Return(mockNC, mockJS, nil)
	mockJS.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).Return(nil, errors.New("no jetstream"))
	mockNC.EXPECT().Close()

	pub, err := NewPublisher(context.Background(), cfg, mockNatsJS, mockJSON)
	assert.Error(t, err)
	assert.Nil(t, pub)
}

func newTestPublisher(t *testing.T) (messaging.Publisher, *mocks.MockJetStream, *mocks.MockJSON) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockNC := mocks.NewMockNatsConn(ctrl)
	mockJS := mocks.NewMockJetStream(ctrl)
	mockNatsJS := mocks.NewMockNatsJetStream(ctrl)
	mockJSON := mocks.NewMockJSON(ctrl)

	cfg := testConfig()
	mockNatsJS.EXPECT().Connect(cfg.URL, gomock.Any()).Return(mockNC, mockJS, nil)
	mockJS.EXPECT().CreateOrUpdateStream(gomock.Any(), gomock.Any()).Return(nil, nil)

	pub, err := NewPublisher(context.Background(), cfg, mockNatsJS, mockJSON)
	require.NoError(t, err)
	return pub, mockJS, mockJSON
}

func TestPublishEvent(t *testing.T) {
	pub, mockJS, mockJSON := newTestPublisher(t)

	event := messaging.NewMintedEvent("01J9Z0000000000000000000AA", &domain.NFTRecord{
		TokenNumber:     "42",
		ContractAddress: "0x4E2BC3C9850263BA5EEE209C4EDE54B190E3CD41",
		OwnerAddress:    "0xAAAA567890123456789012345678901234567890",
	}, time.Now())

	data := []byte(`{"event_type":"nft.minted"}`)
	mockJSON.EXPECT().Marshal(event).Return(data, nil)
	mockJS.EXPECT().Publish(gomock.Any(), "marketplace.nft.minted", data).Return(&jetstream.PubAck{}, nil)

	err := pub.PublishEvent(context.Background(), event)
	assert.NoError(t, err)

	// The event carries normalized addresses
	assert.Equal(t, "0x4e2bc3c9850263ba5eee209c4ede54b190e3cd41", event.ContractAddress)
	assert.Equal(t, "0xaaaa567890123456789012345678901234567890", event.OwnerAddress)
}

func TestPublishEvent_TransferSubject(t *testing.T) {
	pub, mockJS, mockJSON := newTestPublisher(t)

	event := messaging.NewTransferredEvent("01J9Z0000000000000000000AB", &domain.TransferRecord{
		TokenNumber:     "42",
		ContractAddress: "0x4e2bc3c9850263ba5eee209c4ede54b190e3cd41",
		FromAddress:     "0xaaaa567890123456789012345678901234567890",
		ToAddress:       "0xbbbb567890123456789012345678901234567890",
		TxHash:          "0xtransfer42",
	}, time.Now())

	data := []byte(`{"event_type":"nft.transferred"}`)
	mockJSON.EXPECT().Marshal(event).Return(data, nil)
	mockJS.EXPECT().Publish(gomock.Any(), "marketplace.nft.transferred", data).Return(&jetstream.PubAck{}, nil)

	require.NoError(t, pub.PublishEvent(context.Background(), event))
	assert.Equal(t, "0xbbbb567890123456789012345678901234567890", event.OwnerAddress)
	assert.Equal(t, "0xtransfer42", event.TxHash)
}

func TestPublishEvent_PublishError(t *testing.T) {
	pub, mockJS, mockJSON := newTestPublisher(t)

	event := &messaging.MarketplaceEvent{EventType: messaging.EventListingUpdated}
	mockJSON.EXPECT().Marshal(event).Return([]byte(`{}`), nil)
	mockJS.EXPECT().Publish(gomock.Any(), "marketplace.listing.updated", gomock.Any()).
		Return(nil, errors.New("stream unavailable"))

	err := pub.PublishEvent(context.Background(), event)
	assert.Error(t, err)
}
