package rest_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/openmint/marketplace/internal/api/middleware"
	"github.com/openmint/marketplace/internal/api/rest"
	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/logger"
	"github.com/openmint/marketplace/internal/media"
	"github.com/openmint/marketplace/internal/messaging"
	"github.com/openmint/marketplace/internal/mocks"
	"github.com/openmint/marketplace/internal/store/schema"
)

const (
	testAPIKey   = "test-api-key"
	testContract = "0x4e2bc3c9850263ba5eee209c4ede54b190e3cd41"
	testOwner    = "0xaaaa567890123456789012345678901234567890"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testHandlerMocks struct {
	store     *mocks.MockStore
	uploader  *mocks.MockUploader
	publisher *mocks.MockPublisher
}

func setupTestRouter(t *testing.T) (*gin.Engine, *testHandlerMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &testHandlerMocks{
		store:     mocks.NewMockStore(ctrl),
		uploader:  mocks.NewMockUploader(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
	}

	handler := rest.NewHandler(m.store, m.uploader, m.publisher, "http://localhost:8080")

	router := gin.New()
	rest.SetupRoutes(router, handler, middleware.AuthConfig{
		APIKeys: []string{testAPIKey},
	})
	return router, m
}

func performJSON(router *gin.Engine, method, path string, body interface{}, authenticated bool) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set(middleware.APIKeyHeader, testAPIKey)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validCreateNFTRequest() map[string]interface{} {
	return map[string]interface{}{
		"token_number":     "42",
		"contract_address": testContract,
		"owner_address":    testOwner,
		"name":             "Sunset",
		"description":      "Oil on canvas",
		"image_url":        "https://images.example.com/sunset",
		"metadata_url":     "http://localhost:8080/api/v1/metadata/01J9Z0000000000000000000AA",
		"price":            0.5,
		"listed":           true,
	}
}

func TestCreateNFT(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().CreateNFT(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, nft *schema.NFT) error {
			assert.Equal(t, "42", nft.TokenNumber)
			assert.Equal(t, testContract, nft.ContractAddress)
			assert.Equal(t, "Sunset", nft.Name)
			return nil
		})
	m.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, event *messaging.MarketplaceEvent) error {
			assert.Equal(t, messaging.EventNFTMinted, event.EventType)
			assert.Equal(t, "42", event.TokenNumber)
			return nil
		})

	w := performJSON(router, http.MethodPost, "/api/v1/nfts", validCreateNFTRequest(), true)
	require.Equal(t, http.StatusCreated, w.Code)

	var record domain.NFTRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "42", record.TokenNumber)
	assert.True(t, record.Listed)
}

func TestCreateNFT_Duplicate(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().CreateNFT(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateRecord)

	w := performJSON(router, http.MethodPost, "/api/v1/nfts", validCreateNFTRequest(), true)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateNFT_Validation(t *testing.T) {
	router, _ := setupTestRouter(t)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"bad token number", func(r map[string]interface{}) { r["token_number"] = "0x2a" }},
		{"bad contract", func(r map[string]interface{}) { r["contract_address"] = "not-an-address" }},
		{"bad owner", func(r map[string]interface{}) { r["owner_address"] = "" }},
		{"missing name", func(r map[string]interface{}) { r["name"] = "" }},
		{"missing image", func(r map[string]interface{}) { r["image_url"] = "" }},
		{"negative price", func(r map[string]interface{}) { r["price"] = -1.0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateNFTRequest()
			tt.mutate(req)
			w := performJSON(router, http.MethodPost, "/api/v1/nfts", req, true)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateNFT_Unauthenticated(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performJSON(router, http.MethodPost, "/api/v1/nfts", validCreateNFTRequest(), false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetNFT(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().GetNFT(gomock.Any(), testContract, "42").Return(&schema.NFT{
		ContractAddress: testContract,
		TokenNumber:     "42",
		OwnerAddress:    testOwner,
		Name:            "Sunset",
		ImageURL:        "https://images.example.com/sunset",
		Attributes:      datatypes.JSON([]byte(`{"medium":"oil"}`)),
	}, nil)

	w := performJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/nfts/42?contract_address=%s", testContract), nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var record domain.NFTRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, testOwner, record.OwnerAddress)
	assert.Equal(t, map[string]interface{}{"medium": "oil"}, record.Attributes)
}

func TestGetNFT_NotFound(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().GetNFT(gomock.Any(), testContract, "999").Return(nil, domain.ErrTokenNotFound)

	w := performJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/nfts/999?contract_address=%s", testContract), nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetNFT_MissingContract(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performJSON(router, http.MethodGet, "/api/v1/nfts/42", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListNFTs(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().ListNFTsByOwner(gomock.Any(), testOwner).Return([]schema.NFT{
		{TokenNumber: "1", ContractAddress: testContract, OwnerAddress: testOwner, Name: "A", ImageURL: "https://images.example.com/1"},
		{TokenNumber: "2", ContractAddress: testContract, OwnerAddress: testOwner, Name: "B", ImageURL: "https://images.example.com/2"},
	}, nil)

	w := performJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/nfts?owner=%s", testOwner), nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.ListNFTsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.NFTs, 2)
}

func TestListNFTs_MissingOwner(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performJSON(router, http.MethodGet, "/api/v1/nfts", nil, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExploreNFTs(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().ListListedNFTs(gomock.Any()).Return([]schema.NFT{
		{TokenNumber: "7", ContractAddress: testContract, OwnerAddress: testOwner, Name: "Listed", ImageURL: "https://images.example.com/7", Listed: true, Price: 1.5},
	}, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/nfts/explore", nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.ListNFTsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.NFTs, 1)
	assert.True(t, resp.NFTs[0].Listed)
}

func TestUpdateListing(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().UpdateListing(gomock.Any(), testContract, "42", 2.5, true).Return(nil)
	m.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, event *messaging.MarketplaceEvent) error {
			assert.Equal(t, messaging.EventListingUpdated, event.EventType)
			return nil
		})

	w := performJSON(router, http.MethodPatch, "/api/v1/nfts/42", map[string]interface{}{
		"contract_address": testContract,
		"price":            2.5,
		"listed":           true,
	}, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateListing_NotFound(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().UpdateListing(gomock.Any(), testContract, "999", 1.0, false).Return(domain.ErrTokenNotFound)

	w := performJSON(router, http.MethodPatch, "/api/v1/nfts/999", map[string]interface{}{
		"contract_address": testContract,
		"price":            1.0,
		"listed":           false,
	}, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTransfers(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().ListTransfersByToken(gomock.Any(), testContract, "42").Return([]schema.Transfer{
		{FromAddress: testOwner, ToAddress: "0xbbbb567890123456789012345678901234567890", TxHash: "0xabc"},
	}, nil)

	w := performJSON(router, http.MethodGet, fmt.Sprintf("/api/v1/nfts/42/transfers?contract_address=%s", testContract), nil, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.ListTransfersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Transfers, 1)
	assert.Equal(t, "0xabc", resp.Transfers[0].TxHash)
	assert.Equal(t, "42", resp.Transfers[0].TokenNumber)
}

func validCreateTransferRequest() map[string]interface{} {
	return map[string]interface{}{
		"token_number":     "42",
		"contract_address": testContract,
		"from_address":     testOwner,
		"to_address":       "0xbbbb567890123456789012345678901234567890",
		"tx_hash":          "0xtransfer42",
	}
}

func TestCreateTransfer(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().RecordTransfer(gomock.Any(), testContract, "42", gomock.Any()).
		DoAndReturn(func(_ interface{}, _, _ string, transfer *schema.Transfer) error {
			assert.Equal(t, "0xtransfer42", transfer.TxHash)
			return nil
		})
	m.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, event *messaging.MarketplaceEvent) error {
			assert.Equal(t, messaging.EventNFTTransferred, event.EventType)
			assert.Equal(t, "0xtransfer42", event.TxHash)
			return nil
		})

	w := performJSON(router, http.MethodPost, "/api/v1/transfers", validCreateTransferRequest(), true)
	require.Equal(t, http.StatusCreated, w.Code)

	var record domain.TransferRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "0xbbbb567890123456789012345678901234567890", record.ToAddress)
}

func TestCreateTransfer_Duplicate(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().RecordTransfer(gomock.Any(), testContract, "42", gomock.Any()).Return(domain.ErrDuplicateRecord)

	w := performJSON(router, http.MethodPost, "/api/v1/transfers", validCreateTransferRequest(), true)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateTransfer_UnknownToken(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().RecordTransfer(gomock.Any(), testContract, "42", gomock.Any()).Return(domain.ErrTokenNotFound)

	w := performJSON(router, http.MethodPost, "/api/v1/transfers", validCreateTransferRequest(), true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTransfer_ZeroRecipient(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := validCreateTransferRequest()
	req["to_address"] = domain.ZeroAddress
	w := performJSON(router, http.MethodPost, "/api/v1/transfers", req, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpsertUser(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().UpsertUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, user *schema.User) error {
			assert.Equal(t, testOwner, user.Address)
			assert.Equal(t, "alice", user.Username)
			return nil
		})
	m.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, event *messaging.MarketplaceEvent) error {
			assert.Equal(t, messaging.EventUserRegistered, event.EventType)
			return nil
		})

	w := performJSON(router, http.MethodPost, "/api/v1/users", map[string]interface{}{
		"address":  testOwner,
		"username": "alice",
	}, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpsertUser_BadAddress(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performJSON(router, http.MethodPost, "/api/v1/users", map[string]interface{}{
		"address": "vitalik.eth",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func performUpload(router *gin.Engine, field, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile(field, filename)
	_, _ = part.Write(content)
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(middleware.APIKeyHeader, testAPIKey)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadAsset(t *testing.T) {
	router, m := setupTestRouter(t)

	content := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	m.uploader.EXPECT().Upload(gomock.Any(), "artwork.png", content).Return(&media.UploadResult{
		ID:  "img-1",
		URL: "https://imagedelivery.example.com/img-1/public",
	}, nil)

	w := performUpload(router, "file", "artwork.png", content)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp rest.AssetUploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "img-1", resp.ID)
	assert.Contains(t, resp.URL, "/public")
}

func TestUploadAsset_NotAnImage(t *testing.T) {
	router, m := setupTestRouter(t)

	content := []byte("plain text")
	m.uploader.EXPECT().Upload(gomock.Any(), "notes.txt", content).Return(nil, domain.ErrInvalidMediaType)

	w := performUpload(router, "file", "notes.txt", content)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadAsset_MissingFile(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performUpload(router, "attachment", "artwork.png", []byte{0x89})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublishMetadata(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().CreateMetadataDocument(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, doc *schema.MetadataDocument) error {
			assert.NotEmpty(t, doc.ID)
			assert.JSONEq(t, `{"name":"Sunset","image":"https://images.example.com/sunset"}`, string(doc.Document))
			return nil
		})

	w := performJSON(router, http.MethodPost, "/api/v1/metadata", map[string]interface{}{
		"name":  "Sunset",
		"image": "https://images.example.com/sunset",
	}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp rest.MetadataDocumentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, fmt.Sprintf("http://localhost:8080/api/v1/metadata/%s", resp.ID), resp.URL)
}

func TestPublishMetadata_Incomplete(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performJSON(router, http.MethodPost, "/api/v1/metadata", map[string]interface{}{
		"name": "No image",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMetadata_ServedVerbatim(t *testing.T) {
	router, m := setupTestRouter(t)

	document := []byte(`{"name":"Sunset","description":"Oil on canvas","image":"https://images.example.com/sunset"}`)
	m.store.EXPECT().GetMetadataDocument(gomock.Any(), "01J9Z0000000000000000000AA").Return(&schema.MetadataDocument{
		ID:       "01J9Z0000000000000000000AA",
		Document: datatypes.JSON(document),
	}, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/metadata/01J9Z0000000000000000000AA", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(document), w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestGetMetadata_NotFound(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().GetMetadataDocument(gomock.Any(), "missing").Return(nil, nil)

	w := performJSON(router, http.MethodGet, "/api/v1/metadata/missing", nil, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStoreFailureSurfacesAsInternalError(t *testing.T) {
	router, m := setupTestRouter(t)

	m.store.EXPECT().ListListedNFTs(gomock.Any()).Return(nil, errors.New("connection reset"))

	w := performJSON(router, http.MethodGet, "/api/v1/nfts/explore", nil, false)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performJSON(router, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
