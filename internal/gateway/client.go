package gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/openmint/marketplace/internal/adapter"
	"github.com/openmint/marketplace/internal/domain"
)

// MetadataDocument is a published metadata document and its public URL. The
// URL is what gets submitted on-chain as the tokenURI.
type MetadataDocument struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// AssetUpload is the hosted location of an uploaded artwork asset
type AssetUpload struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// nftsResponse wraps NFT list responses
type nftsResponse struct {
	NFTs []domain.NFTRecord `json:"nfts"`
}

// Client talks to the marketplace persistence gateway
//
//go:generate mockgen -source=client.go -destination=../mocks/gateway.go -package=mocks -mock_names=Client=MockGatewayClient
type Client interface {
	// CreateNFT persists a freshly minted NFT record
	CreateNFT(ctx context.Context, record *domain.NFTRecord) error

	// CreateTransfer persists a transfer audit record and moves ownership of
	// the token to the recipient
	CreateTransfer(ctx context.Context, record *domain.TransferRecord) error

	// UpsertUser registers a wallet address, updating profile fields when the
	// user already exists
	UpsertUser(ctx context.Context, user *domain.UserRecord) error

	// UploadAsset uploads artwork and returns its hosted location
	UploadAsset(ctx context.Context, filename string, content []byte) (*AssetUpload, error)

	// PublishMetadata publishes a metadata document and returns its public URL
	PublishMetadata(ctx context.Context, metadata domain.TokenMetadata) (*MetadataDocument, error)

	// ListNFTsByOwner fetches the NFTs owned by an address
	ListNFTsByOwner(ctx context.Context, owner string) ([]domain.NFTRecord, error)

	// ExploreNFTs fetches the NFTs currently listed for sale
	ExploreNFTs(ctx context.Context) ([]domain.NFTRecord, error)

	// UpdateListing changes the sale state of an NFT record
	UpdateListing(ctx context.Context, update domain.ListingUpdate) error
}

// gatewayClient implements Client over the gateway's REST API
type gatewayClient struct {
	httpClient adapter.HTTPClient
	json       adapter.JSON
	baseURL    string
	apiKey     string
}

// NewClient creates a persistence gateway client
func NewClient(httpClient adapter.HTTPClient, json adapter.JSON, baseURL string, apiKey string) Client {
	return &gatewayClient{
		httpClient: httpClient,
		json:       json,
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

func (c *gatewayClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"X-API-KEY": c.apiKey}
}

// postJSON marshals body and POSTs it to path
func (c *gatewayClient) postJSON(ctx context.Context, path string, body interface{}, result interface{}) error {
	payload, err := c.json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	respBody, err := c.httpClient.Post(ctx, c.baseURL+path, "application/json", c.headers(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to call gateway: %w", err)
	}

	if result == nil {
		return nil
	}
	if err := c.json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to unmarshal gateway response: %w", err)
	}
	return nil
}

// CreateNFT persists a freshly minted NFT record
func (c *gatewayClient) CreateNFT(ctx context.Context, record *domain.NFTRecord) error {
	return c.postJSON(ctx, "/api/v1/nfts", record, nil)
}

// CreateTransfer persists a transfer audit record
func (c *gatewayClient) CreateTransfer(ctx context.Context, record *domain.TransferRecord) error {
	return c.postJSON(ctx, "/api/v1/transfers", record, nil)
}

// UpsertUser registers a wallet address
func (c *gatewayClient) UpsertUser(ctx context.Context, user *domain.UserRecord) error {
	return c.postJSON(ctx, "/api/v1/users", user, nil)
}

// UploadAsset uploads artwork and returns its hosted location
func (c *gatewayClient) UploadAsset(ctx context.Context, filename string, content []byte) (*AssetUpload, error) {
	respBody, err := c.httpClient.PostMultipart(ctx, c.baseURL+"/api/v1/upload", c.headers(),
		"file", filename, bytes.NewReader(content), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upload asset: %w", err)
	}

	var upload AssetUpload
	if err := c.json.Unmarshal(respBody, &upload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal upload response: %w", err)
	}
	return &upload, nil
}

// PublishMetadata publishes a metadata document and returns its public URL
func (c *gatewayClient) PublishMetadata(ctx context.Context, metadata domain.TokenMetadata) (*MetadataDocument, error) {
	var doc MetadataDocument
	if err := c.postJSON(ctx, "/api/v1/metadata", metadata, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListNFTsByOwner fetches the NFTs owned by an address
func (c *gatewayClient) ListNFTsByOwner(ctx context.Context, owner string) ([]domain.NFTRecord, error) {
	var resp nftsResponse
	reqURL := fmt.Sprintf("%s/api/v1/nfts?owner=%s", c.baseURL, url.QueryEscape(domain.NormalizeAddress(owner)))
	if err := c.httpClient.Get(ctx, reqURL, c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("failed to list NFTs: %w", err)
	}
	return resp.NFTs, nil
}

// ExploreNFTs fetches the NFTs currently listed for sale
func (c *gatewayClient) ExploreNFTs(ctx context.Context) ([]domain.NFTRecord, error) {
	var resp nftsResponse
	if err := c.httpClient.Get(ctx, c.baseURL+"/api/v1/nfts/explore", c.headers(), &resp); err != nil {
		return nil, fmt.Errorf("failed to explore NFTs: %w", err)
	}
	return resp.NFTs, nil
}

// UpdateListing changes the sale state of an NFT record
func (c *gatewayClient) UpdateListing(ctx context.Context, update domain.ListingUpdate) error {
	payload, err := c.json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	path := fmt.Sprintf("%s/api/v1/nfts/%s", c.baseURL, url.PathEscape(update.TokenNumber))
	if _, err := c.httpClient.Patch(ctx, path, "application/json", c.headers(), bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	return nil
}
