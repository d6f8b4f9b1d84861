package media_test

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/cloudflare/cloudflare-go"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/logger"
	"github.com/openmint/marketplace/internal/media"
	"github.com/openmint/marketplace/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// pngBytes is a minimal PNG header, enough for content detection
var pngBytes = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52}

func newTestUploader(t *testing.T) (media.Uploader, *mocks.MockCloudflareClient) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfClient := mocks.NewMockCloudflareClient(ctrl)
	uploader := media.NewCloudflareUploader(cfClient, media.Config{AccountID: "account-1"})
	return uploader, cfClient
}

func TestUpload(t *testing.T) {
	uploader, cfClient := newTestUploader(t)

	cfClient.EXPECT().UploadImage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rc *cloudflare.ResourceContainer, params cloudflare.UploadImageParams) (cloudflare.Image, error) {
			assert.Equal(t, "account-1", rc.Identifier)
			assert.Equal(t, "artwork.png", params.Name)

			content, err := io.ReadAll(params.File)
			require.NoError(t, err)
			assert.Equal(t, pngBytes, content)

			return cloudflare.Image{
				ID: "img-1",
				Variants: []string{
					"https://imagedelivery.example.com/img-1/thumbnail",
					"https://imagedelivery.example.com/img-1/public",
				},
			}, nil
		})

	result, err := uploader.Upload(context.Background(), "artwork.png", pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "img-1", result.ID)
	assert.Equal(t, "https://imagedelivery.example.com/img-1/public", result.URL)
}

func TestUpload_AppendsDetectedExtension(t *testing.T) {
	uploader, cfClient := newTestUploader(t)

	cfClient.EXPECT().UploadImage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *cloudflare.ResourceContainer, params cloudflare.UploadImageParams) (cloudflare.Image, error) {
			assert.Equal(t, "artwork.png", params.Name)
			return cloudflare.Image{
				ID:       "img-2",
				Variants: []string{"https://imagedelivery.example.com/img-2/public"},
			}, nil
		})

	_, err := uploader.Upload(context.Background(), "artwork", pngBytes)
	require.NoError(t, err)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	uploader, _ := newTestUploader(t)

	_, err := uploader.Upload(context.Background(), "notes.txt", []byte("just some text"))
	assert.ErrorIs(t, err, domain.ErrInvalidMediaType)
}

func TestUpload_ProviderError(t *testing.T) {
	uploader, cfClient := newTestUploader(t)

	cfClient.EXPECT().UploadImage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(cloudflare.Image{}, errors.New("quota exceeded"))

	_, err := uploader.Upload(context.Background(), "artwork.png", pngBytes)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidMediaType)
}

func TestUpload_FallsBackToFirstVariant(t *testing.T) {
	uploader, cfClient := newTestUploader(t)

	cfClient.EXPECT().UploadImage(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(cloudflare.Image{
			ID: "img-3",
			Variants: []string{
				"https://imagedelivery.example.com/img-3/thumbnail",
				"https://imagedelivery.example.com/img-3/hero",
			},
		}, nil)

	result, err := uploader.Upload(context.Background(), "artwork.png", pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "https://imagedelivery.example.com/img-3/thumbnail", result.URL)
}
