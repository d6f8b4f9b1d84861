package rest

import (
	"encoding/json"
	"errors"

	"gorm.io/datatypes"

	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/store/schema"
)

// CreateNFTRequest is the body for POST /api/v1/nfts. Wallet agents submit it
// once a mint transaction is confirmed on-chain.
type CreateNFTRequest struct {
	TokenNumber     string                 `json:"token_number"`
	ContractAddress string                 `json:"contract_address"`
	OwnerAddress    string                 `json:"owner_address"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description,omitempty"`
	ImageURL        string                 `json:"image_url"`
	MetadataURL     string                 `json:"metadata_url,omitempty"`
	Attributes      map[string]interface{} `json:"attributes,omitempty"`
	Price           float64                `json:"price"`
	Listed          bool                   `json:"listed"`
}

// Validate checks the request fields
func (r *CreateNFTRequest) Validate() error {
	if !domain.IsValidTokenNumber(r.TokenNumber) {
		return errors.New("token_number must be an unsigned decimal integer")
	}
	if !domain.IsValidAddress(r.ContractAddress) {
		return errors.New("contract_address must be a hex-40 address")
	}
	if !domain.IsValidAddress(r.OwnerAddress) {
		return errors.New("owner_address must be a hex-40 address")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.ImageURL == "" {
		return errors.New("image_url is required")
	}
	if r.Price < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}

// ToSchema converts the request to the storage model
func (r *CreateNFTRequest) ToSchema() (*schema.NFT, error) {
	var attributes datatypes.JSON
	if len(r.Attributes) > 0 {
		data, err := json.Marshal(r.Attributes)
		if err != nil {
			return nil, err
		}
		attributes = datatypes.JSON(data)
	}

	return &schema.NFT{
		ContractAddress: r.ContractAddress,
		TokenNumber:     r.TokenNumber,
		OwnerAddress:    r.OwnerAddress,
		Name:            r.Name,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		MetadataURL:     r.MetadataURL,
		Attributes:      attributes,
		Price:           r.Price,
		Listed:          r.Listed,
	}, nil
}

// CreateTransferRequest is the body for POST /api/v1/transfers. Wallet agents
// submit it once a transfer transaction is confirmed on-chain.
type CreateTransferRequest struct {
	TokenNumber     string `json:"token_number"`
	ContractAddress string `json:"contract_address"`
	FromAddress     string `json:"from_address"`
	ToAddress       string `json:"to_address"`
	TxHash          string `json:"tx_hash"`
}

// Validate checks the request fields
func (r *CreateTransferRequest) Validate() error {
	if !domain.IsValidTokenNumber(r.TokenNumber) {
		return errors.New("token_number must be an unsigned decimal integer")
	}
	if !domain.IsValidAddress(r.ContractAddress) {
		return errors.New("contract_address must be a hex-40 address")
	}
	if !domain.IsValidAddress(r.FromAddress) {
		return errors.New("from_address must be a hex-40 address")
	}
	if !domain.IsValidAddress(r.ToAddress) {
		return errors.New("to_address must be a hex-40 address")
	}
	if domain.SameAddress(r.ToAddress, domain.ZeroAddress) {
		return errors.New("to_address must not be the zero address")
	}
	if r.TxHash == "" {
		return errors.New("tx_hash is required")
	}
	return nil
}

// UpsertUserRequest is the body for POST /api/v1/users
type UpsertUserRequest struct {
	Address  string `json:"address"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Validate checks the request fields
func (r *UpsertUserRequest) Validate() error {
	if !domain.IsValidAddress(r.Address) {
		return errors.New("address must be a hex-40 address")
	}
	return nil
}

// UpdateListingRequest is the body for PATCH /api/v1/nfts/:token_number
type UpdateListingRequest struct {
	ContractAddress string  `json:"contract_address"`
	Price           float64 `json:"price"`
	Listed          bool    `json:"listed"`
}

// Validate checks the request fields
func (r *UpdateListingRequest) Validate() error {
	if !domain.IsValidAddress(r.ContractAddress) {
		return errors.New("contract_address must be a hex-40 address")
	}
	if r.Price < 0 {
		return errors.New("price must not be negative")
	}
	return nil
}

// PublishMetadataRequest is the body for POST /api/v1/metadata
type PublishMetadataRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
}

// Validate checks the request fields
func (r *PublishMetadataRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.Image == "" {
		return errors.New("image is required")
	}
	return nil
}

// ListNFTsResponse is the envelope for NFT list endpoints
type ListNFTsResponse struct {
	NFTs []domain.NFTRecord `json:"nfts"`
}

// ListTransfersResponse is the envelope for the transfer history endpoint
type ListTransfersResponse struct {
	Transfers []domain.TransferRecord `json:"transfers"`
}

// AssetUploadResponse is the reply for POST /api/v1/upload
type AssetUploadResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// MetadataDocumentResponse is the reply for POST /api/v1/metadata
type MetadataDocumentResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// toNFTRecord maps a storage row onto the wire record
func toNFTRecord(nft *schema.NFT) domain.NFTRecord {
	record := domain.NFTRecord{
		TokenNumber:     nft.TokenNumber,
		ContractAddress: nft.ContractAddress,
		OwnerAddress:    nft.OwnerAddress,
		Name:            nft.Name,
		Description:     nft.Description,
		ImageURL:        nft.ImageURL,
		MetadataURL:     nft.MetadataURL,
		Price:           nft.Price,
		Listed:          nft.Listed,
		CreatedAt:       nft.CreatedAt,
		UpdatedAt:       nft.UpdatedAt,
	}

	if len(nft.Attributes) > 0 {
		// Attributes are stored as the JSON the client sent; a decode failure
		// here would mean corrupted storage, so the field is simply omitted.
		var attributes map[string]interface{}
		if err := json.Unmarshal(nft.Attributes, &attributes); err == nil {
			record.Attributes = attributes
		}
	}

	return record
}

// toNFTRecords maps storage rows onto wire records
func toNFTRecords(nfts []schema.NFT) []domain.NFTRecord {
	records := make([]domain.NFTRecord, 0, len(nfts))
	for i := range nfts {
		records = append(records, toNFTRecord(&nfts[i]))
	}
	return records
}

// toTransferRecords maps storage rows onto wire records
func toTransferRecords(contractAddress, tokenNumber string, transfers []schema.Transfer) []domain.TransferRecord {
	records := make([]domain.TransferRecord, 0, len(transfers))
	for _, t := range transfers {
		records = append(records, domain.TransferRecord{
			TokenNumber:     tokenNumber,
			ContractAddress: contractAddress,
			FromAddress:     t.FromAddress,
			ToAddress:       t.ToAddress,
			TxHash:          t.TxHash,
			CreatedAt:       t.CreatedAt,
		})
	}
	return records
}
