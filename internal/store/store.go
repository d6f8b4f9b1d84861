package store

import (
	"context"

	"github.com/openmint/marketplace/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateNFT persists a freshly minted token record. Returns
	// domain.ErrDuplicateRecord when the (contract, token number) pair exists.
	CreateNFT(ctx context.Context, nft *schema.NFT) error

	// GetNFT retrieves a token by contract address and token number. Returns
	// domain.ErrTokenNotFound when no record exists.
	GetNFT(ctx context.Context, contractAddress, tokenNumber string) (*schema.NFT, error)

	// ListNFTsByOwner retrieves all tokens owned by an address, newest first
	ListNFTsByOwner(ctx context.Context, owner string) ([]schema.NFT, error)

	// ListListedNFTs retrieves all tokens currently offered for sale, newest first
	ListListedNFTs(ctx context.Context) ([]schema.NFT, error)

	// UpdateListing changes the sale state of a token
	UpdateListing(ctx context.Context, contractAddress, tokenNumber string, price float64, listed bool) error

	// RecordTransfer appends a transfer audit row and moves the token's owner
	// to the recipient in one transaction. Returns domain.ErrDuplicateRecord
	// when the transaction hash was already recorded.
	RecordTransfer(ctx context.Context, contractAddress, tokenNumber string, transfer *schema.Transfer) error

	// ListTransfersByToken retrieves the transfer history of a token, newest first
	ListTransfersByToken(ctx context.Context, contractAddress, tokenNumber string) ([]schema.Transfer, error)

	// UpsertUser registers a wallet address, updating profile fields when the
	// address is already known
	UpsertUser(ctx context.Context, user *schema.User) error

	// GetUser retrieves a user by wallet address
	GetUser(ctx context.Context, address string) (*schema.User, error)

	// CreateMetadataDocument stores a published metadata document
	CreateMetadataDocument(ctx context.Context, doc *schema.MetadataDocument) error

	// GetMetadataDocument retrieves a published metadata document by ID
	GetMetadataDocument(ctx context.Context, id string) (*schema.MetadataDocument, error)
}
