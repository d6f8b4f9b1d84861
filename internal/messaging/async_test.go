package messaging_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

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

func TestAsyncPublisher_DeliversInBackground(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockPublisher(ctrl)

	var mu sync.Mutex
	var delivered []string

	inner.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *messaging.MarketplaceEvent) error {
			mu.Lock()
			defer mu.Unlock()
			delivered = append(delivered, event.ID)
			return nil
		}).Times(3)
	inner.EXPECT().Close()

	pub := messaging.NewAsyncPublisher(inner, 2)

	for _, id := range []string{"a", "b", "c"} {
		err := pub.PublishEvent(context.Background(), &messaging.MarketplaceEvent{
			ID:        id,
			EventType: messaging.EventNFTMinted,
		})
		assert.NoError(t, err)
	}

	// Close drains the pool, so every submitted event is out by now
	pub.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, delivered)
}

func TestAsyncPublisher_DeliveryFailureNotSurfaced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	inner := mocks.NewMockPublisher(ctrl)
	inner.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	inner.EXPECT().Close()

	pub := messaging.NewAsyncPublisher(inner, 1)

	err := pub.PublishEvent(context.Background(), &messaging.MarketplaceEvent{
		ID:        "x",
		EventType: messaging.EventNFTTransferred,
	})
	assert.NoError(t, err)

	pub.Close()
}
