package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudflare/cloudflare-go"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/openmint/marketplace/internal/adapter"
	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/logger"
)

// UploadResult holds the hosted location of an uploaded asset
type UploadResult struct {
	// ID is the provider-assigned asset identifier
	ID string
	// URL is the public delivery URL for the asset
	URL string
}

// Uploader uploads NFT artwork to a hosting provider
//
//go:generate mockgen -source=uploader.go -destination=../mocks/uploader.go -package=mocks -mock_names=Uploader=MockUploader
type Uploader interface {
	// Upload stores the asset and returns its hosted location. Returns
	// domain.ErrInvalidMediaType when the content is not an image.
	Upload(ctx context.Context, filename string, content []byte) (*UploadResult, error)
}

// Config holds configuration for the Cloudflare Images uploader
type Config struct {
	// AccountID is the Cloudflare account ID for Images
	AccountID string
}

// cloudflareUploader implements Uploader on Cloudflare Images
type cloudflareUploader struct {
	cfClient adapter.CloudflareClient
	rc       *cloudflare.ResourceContainer
}

// NewCloudflareUploader creates an Uploader backed by Cloudflare Images
func NewCloudflareUploader(cfClient adapter.CloudflareClient, cfg Config) Uploader {
	return &cloudflareUploader{
		cfClient: cfClient,
		rc: &cloudflare.ResourceContainer{
			Level:      cloudflare.AccountRouteLevel,
			Identifier: cfg.AccountID,
		},
	}
}

// Upload stores the asset and returns its hosted location
func (u *cloudflareUploader) Upload(ctx context.Context, filename string, content []byte) (*UploadResult, error) {
	mtype := mimetype.Detect(content)
	if !strings.HasPrefix(mtype.String(), "image/") {
		logger.WarnCtx(ctx, "Rejecting non-image asset",
			zap.String("filename", filename),
			zap.String("detected", mtype.String()))
		return nil, domain.ErrInvalidMediaType
	}

	if filepath.Ext(filename) == "" {
		filename = fmt.Sprintf("%s%s", filename, mtype.Extension())
	}

	image, err := u.cfClient.UploadImage(ctx, u.rc, cloudflare.UploadImageParams{
		File: io.NopCloser(bytes.NewReader(content)),
		Name: filename,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	logger.InfoCtx(ctx, "Uploaded asset to Cloudflare Images",
		zap.String("filename", filename),
		zap.String("imageID", image.ID))

	return &UploadResult{
		ID:  image.ID,
		URL: deliveryURL(image),
	}, nil
}

// deliveryURL picks the public variant URL for an image. The "public" variant
// is preferred, falling back to the first variant available.
func deliveryURL(image cloudflare.Image) string {
	var first string
	for _, variant := range image.Variants {
		if first == "" {
			first = variant
		}
		if strings.HasSuffix(strings.TrimRight(variant, "/"), "/public") {
			return variant
		}
	}
	return first
}
