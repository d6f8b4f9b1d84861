package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"

	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/media"
	"github.com/openmint/marketplace/internal/messaging"
	"github.com/openmint/marketplace/internal/store"
	"github.com/openmint/marketplace/internal/store/schema"
)

// maxUploadSize caps asset uploads at 10 MiB
const maxUploadSize = 10 << 20

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// CreateNFT records a confirmed mint
	// POST /api/v1/nfts
	CreateNFT(c *gin.Context)

	// GetNFT retrieves a single token record
	// GET /api/v1/nfts/:token_number?contract_address=<address>
	GetNFT(c *gin.Context)

	// ListNFTs retrieves the tokens owned by an address
	// GET /api/v1/nfts?owner=<address>
	ListNFTs(c *gin.Context)

	// ExploreNFTs retrieves all tokens currently listed for sale
	// GET /api/v1/nfts/explore
	ExploreNFTs(c *gin.Context)

	// UpdateListing changes the sale state of a token
	// PATCH /api/v1/nfts/:token_number
	UpdateListing(c *gin.Context)

	// ListTransfers retrieves the transfer history of a token
	// GET /api/v1/nfts/:token_number/transfers?contract_address=<address>
	ListTransfers(c *gin.Context)

	// CreateTransfer records a confirmed ownership transfer
	// POST /api/v1/transfers
	CreateTransfer(c *gin.Context)

	// UpsertUser registers a wallet address
	// POST /api/v1/users
	UpsertUser(c *gin.Context)

	// UploadAsset stores NFT artwork and returns its hosted location
	// POST /api/v1/upload (multipart, field "file")
	UploadAsset(c *gin.Context)

	// PublishMetadata stores a metadata document and returns its public URL
	// POST /api/v1/metadata
	PublishMetadata(c *gin.Context)

	// GetMetadata serves a published metadata document verbatim
	// GET /api/v1/metadata/:id
	GetMetadata(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store     store.Store
	uploader  media.Uploader
	publisher messaging.Publisher
	publicURL string
}

// NewHandler creates a new REST API handler
func NewHandler(s store.Store, uploader media.Uploader, publisher messaging.Publisher, publicURL string) Handler {
	return &handler{
		store:     s,
		uploader:  uploader,
		publisher: publisher,
		publicURL: publicURL,
	}
}

// CreateNFT records a confirmed mint
func (h *handler) CreateNFT(c *gin.Context) {
	var req CreateNFTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	nft, err := req.ToSchema()
	if err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid attributes: %v", err))
		return
	}

	if err := h.store.CreateNFT(c.Request.Context(), nft); err != nil {
		if errors.Is(err, domain.ErrDuplicateRecord) {
			respondConflict(c, "Token already recorded")
			return
		}
		respondInternalError(c, err, "Failed to create NFT")
		return
	}

	record := toNFTRecord(nft)
	h.publishEvent(c, messaging.NewMintedEvent(ulid.Make().String(), &record, time.Now()))

	c.JSON(http.StatusCreated, record)
}

// GetNFT retrieves a single token record
func (h *handler) GetNFT(c *gin.Context) {
	tokenNumber := c.Param("token_number")
	contractAddress := c.Query("contract_address")

	if !domain.IsValidTokenNumber(tokenNumber) {
		respondBadRequest(c, "token_number must be an unsigned decimal integer")
		return
	}
	if !domain.IsValidAddress(contractAddress) {
		respondBadRequest(c, "contract_address must be a hex-40 address")
		return
	}

	nft, err := h.store.GetNFT(c.Request.Context(), contractAddress, tokenNumber)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			respondNotFound(c, "Token not found")
			return
		}
		respondInternalError(c, err, "Failed to get NFT")
		return
	}

	c.JSON(http.StatusOK, toNFTRecord(nft))
}

// ListNFTs retrieves the tokens owned by an address
func (h *handler) ListNFTs(c *gin.Context) {
	owner := c.Query("owner")
	if !domain.IsValidAddress(owner) {
		respondBadRequest(c, "owner must be a hex-40 address")
		return
	}

	nfts, err := h.store.ListNFTsByOwner(c.Request.Context(), owner)
	if err != nil {
		respondInternalError(c, err, "Failed to list NFTs")
		return
	}

	c.JSON(http.StatusOK, ListNFTsResponse{NFTs: toNFTRecords(nfts)})
}

// ExploreNFTs retrieves all tokens currently listed for sale
func (h *handler) ExploreNFTs(c *gin.Context) {
	nfts, err := h.store.ListListedNFTs(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list NFTs")
		return
	}

	c.JSON(http.StatusOK, ListNFTsResponse{NFTs: toNFTRecords(nfts)})
}

// UpdateListing changes the sale state of a token
func (h *handler) UpdateListing(c *gin.Context) {
	tokenNumber := c.Param("token_number")
	if !domain.IsValidTokenNumber(tokenNumber) {
		respondBadRequest(c, "token_number must be an unsigned decimal integer")
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	err := h.store.UpdateListing(c.Request.Context(), req.ContractAddress, tokenNumber, req.Price, req.Listed)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			respondNotFound(c, "Token not found")
			return
		}
		respondInternalError(c, err, "Failed to update listing")
		return
	}

	h.publishEvent(c, &messaging.MarketplaceEvent{
		ID:              ulid.Make().String(),
		EventType:       messaging.EventListingUpdated,
		ContractAddress: domain.NormalizeAddress(req.ContractAddress),
		TokenNumber:     tokenNumber,
		Timestamp:       time.Now(),
	})

	c.JSON(http.StatusOK, domain.ListingUpdate{
		TokenNumber:     tokenNumber,
		ContractAddress: domain.NormalizeAddress(req.ContractAddress),
		Price:           req.Price,
		Listed:          req.Listed,
	})
}

// ListTransfers retrieves the transfer history of a token
func (h *handler) ListTransfers(c *gin.Context) {
	tokenNumber := c.Param("token_number")
	contractAddress := c.Query("contract_address")

	if !domain.IsValidTokenNumber(tokenNumber) {
		respondBadRequest(c, "token_number must be an unsigned decimal integer")
		return
	}
	if !domain.IsValidAddress(contractAddress) {
		respondBadRequest(c, "contract_address must be a hex-40 address")
		return
	}

	transfers, err := h.store.ListTransfersByToken(c.Request.Context(), contractAddress, tokenNumber)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			respondNotFound(c, "Token not found")
			return
		}
		respondInternalError(c, err, "Failed to list transfers")
		return
	}

	c.JSON(http.StatusOK, ListTransfersResponse{
		Transfers: toTransferRecords(domain.NormalizeAddress(contractAddress), tokenNumber, transfers),
	})
}

// CreateTransfer records a confirmed ownership transfer
func (h *handler) CreateTransfer(c *gin.Context) {
	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	transfer := &schema.Transfer{
		FromAddress: req.FromAddress,
		ToAddress:   req.ToAddress,
		TxHash:      req.TxHash,
	}

	err := h.store.RecordTransfer(c.Request.Context(), req.ContractAddress, req.TokenNumber, transfer)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenNotFound):
			respondNotFound(c, "Token not found")
		case errors.Is(err, domain.ErrDuplicateRecord):
			respondConflict(c, "Transfer already recorded")
		default:
			respondInternalError(c, err, "Failed to record transfer")
		}
		return
	}

	record := domain.TransferRecord{
		TokenNumber:     req.TokenNumber,
		ContractAddress: domain.NormalizeAddress(req.ContractAddress),
		FromAddress:     transfer.FromAddress,
		ToAddress:       transfer.ToAddress,
		TxHash:          transfer.TxHash,
		CreatedAt:       transfer.CreatedAt,
	}
	h.publishEvent(c, messaging.NewTransferredEvent(ulid.Make().String(), &record, time.Now()))

	c.JSON(http.StatusCreated, record)
}

// UpsertUser registers a wallet address
func (h *handler) UpsertUser(c *gin.Context) {
	var req UpsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	user := &schema.User{
		Address:  req.Address,
		Username: req.Username,
		Email:    req.Email,
	}

	if err := h.store.UpsertUser(c.Request.Context(), user); err != nil {
		respondInternalError(c, err, "Failed to upsert user")
		return
	}

	h.publishEvent(c, &messaging.MarketplaceEvent{
		ID:           ulid.Make().String(),
		EventType:    messaging.EventUserRegistered,
		OwnerAddress: user.Address,
		Timestamp:    time.Now(),
	})

	c.JSON(http.StatusOK, domain.UserRecord{
		Address:   user.Address,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// UploadAsset stores NFT artwork and returns its hosted location
func (h *handler) UploadAsset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "A multipart file field named 'file' is required")
		return
	}

	if fileHeader.Size > maxUploadSize {
		respondBadRequest(c, "File exceeds the maximum upload size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondInternalError(c, err, "Failed to open uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		respondInternalError(c, err, "Failed to read uploaded file")
		return
	}
	if len(content) > maxUploadSize {
		respondBadRequest(c, "File exceeds the maximum upload size")
		return
	}

	result, err := h.uploader.Upload(c.Request.Context(), fileHeader.Filename, content)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMediaType) {
			respondValidationError(c, "Uploaded file is not an image")
			return
		}
		respondInternalError(c, err, "Failed to upload asset")
		return
	}

	c.JSON(http.StatusCreated, AssetUploadResponse{
		ID:  result.ID,
		URL: result.URL,
	})
}

// PublishMetadata stores a metadata document and returns its public URL
func (h *handler) PublishMetadata(c *gin.Context) {
	var req PublishMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	data, err := json.Marshal(domain.TokenMetadata{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to encode metadata")
		return
	}

	doc := &schema.MetadataDocument{
		ID:       ulid.Make().String(),
		Document: datatypes.JSON(data),
	}

	if err := h.store.CreateMetadataDocument(c.Request.Context(), doc); err != nil {
		respondInternalError(c, err, "Failed to store metadata")
		return
	}

	c.JSON(http.StatusCreated, MetadataDocumentResponse{
		ID:  doc.ID,
		URL: fmt.Sprintf("%s/api/v1/metadata/%s", h.publicURL, doc.ID),
	})
}

// GetMetadata serves a published metadata document verbatim. The document is
// the tokenURI target, so the stored bytes go out untouched.
func (h *handler) GetMetadata(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Document ID is required")
		return
	}

	doc, err := h.store.GetMetadataDocument(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "Failed to get metadata")
		return
	}
	if doc == nil {
		respondNotFound(c, "Metadata document not found")
		return
	}

	c.Data(http.StatusOK, "application/json", doc.Document)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "marketplace-api",
	})
}

// publishEvent hands the event to the publisher. The publisher is async and
// never fails the request.
func (h *handler) publishEvent(c *gin.Context, event *messaging.MarketplaceEvent) {
	_ = h.publisher.PublishEvent(c.Request.Context(), event)
}
