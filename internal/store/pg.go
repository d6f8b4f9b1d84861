package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the marketplace tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.NFT{},
		&schema.Transfer{},
		&schema.User{},
		&schema.MetadataDocument{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// isUniqueViolation checks if the error is a unique constraint violation
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "duplicate key value")
}

// CreateNFT persists a freshly minted token record
func (s *pgStore) CreateNFT(ctx context.Context, nft *schema.NFT) error {
	nft.ContractAddress = domain.NormalizeAddress(nft.ContractAddress)
	nft.OwnerAddress = domain.NormalizeAddress(nft.OwnerAddress)

	if err := s.db.WithContext(ctx).Create(nft).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRecord
		}
		return fmt.Errorf("failed to create NFT: %w", err)
	}
	return nil
}

// GetNFT retrieves a token by contract address and token number
func (s *pgStore) GetNFT(ctx context.Context, contractAddress, tokenNumber string) (*schema.NFT, error) {
	var nft schema.NFT
	err := s.db.WithContext(ctx).
		Where("contract_address = ? AND token_number = ?", domain.NormalizeAddress(contractAddress), tokenNumber).
		First(&nft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get NFT: %w", err)
	}
	return &nft, nil
}

// ListNFTsByOwner retrieves all tokens owned by an address, newest first
func (s *pgStore) ListNFTsByOwner(ctx context.Context, owner string) ([]schema.NFT, error) {
	var nfts []schema.NFT
	err := s.db.WithContext(ctx).
		Where("owner_address = ?", domain.NormalizeAddress(owner)).
		Order("created_at DESC").
		Find(&nfts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list NFTs by owner: %w", err)
	}
	return nfts, nil
}

// ListListedNFTs retrieves all tokens currently offered for sale, newest first
func (s *pgStore) ListListedNFTs(ctx context.Context) ([]schema.NFT, error) {
	var nfts []schema.NFT
	err := s.db.WithContext(ctx).
		Where("listed = ?", true).
		Order("created_at DESC").
		Find(&nfts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list listed NFTs: %w", err)
	}
	return nfts, nil
}

// UpdateListing changes the sale state of a token
func (s *pgStore) UpdateListing(ctx context.Context, contractAddress, tokenNumber string, price float64, listed bool) error {
	result := s.db.WithContext(ctx).
		Model(&schema.NFT{}).
		Where("contract_address = ? AND token_number = ?", domain.NormalizeAddress(contractAddress), tokenNumber).
		Updates(map[string]interface{}{
			"price":      price,
			"listed":     listed,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update listing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTokenNotFound
	}
	return nil
}

// RecordTransfer appends a transfer audit row and moves the token's owner to
// the recipient in one transaction
func (s *pgStore) RecordTransfer(ctx context.Context, contractAddress, tokenNumber string, transfer *schema.Transfer) error {
	transfer.FromAddress = domain.NormalizeAddress(transfer.FromAddress)
	transfer.ToAddress = domain.NormalizeAddress(transfer.ToAddress)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var nft schema.NFT
		if err := tx.
			Where("contract_address = ? AND token_number = ?", domain.NormalizeAddress(contractAddress), tokenNumber).
			First(&nft).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTokenNotFound
			}
			return fmt.Errorf("failed to get NFT: %w", err)
		}

		transfer.NFTID = nft.ID
		if err := tx.Create(transfer).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateRecord
			}
			return fmt.Errorf("failed to create transfer: %w", err)
		}

		// A transfer also delists the token: the new owner has not priced it
		if err := tx.Model(&schema.NFT{}).
			Where("id = ?", nft.ID).
			Updates(map[string]interface{}{
				"owner_address": transfer.ToAddress,
				"listed":        false,
				"updated_at":    time.Now(),
			}).Error; err != nil {
			return fmt.Errorf("failed to update NFT owner: %w", err)
		}

		return nil
	})
	return err
}

// ListTransfersByToken retrieves the transfer history of a token, newest first
func (s *pgStore) ListTransfersByToken(ctx context.Context, contractAddress, tokenNumber string) ([]schema.Transfer, error) {
	nft, err := s.GetNFT(ctx, contractAddress, tokenNumber)
	if err != nil {
		return nil, err
	}

	var transfers []schema.Transfer
	err = s.db.WithContext(ctx).
		Where("nft_id = ?", nft.ID).
		Order("created_at DESC").
		Find(&transfers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return transfers, nil
}

// UpsertUser registers a wallet address, updating profile fields when the
// address is already known
func (s *pgStore) UpsertUser(ctx context.Context, user *schema.User) error {
	user.Address = domain.NormalizeAddress(user.Address)

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "address"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"username":   user.Username,
				"email":      user.Email,
				"updated_at": time.Now(),
			}),
		}).
		Create(user).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by wallet address
func (s *pgStore) GetUser(ctx context.Context, address string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).
		Where("address = ?", domain.NormalizeAddress(address)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// CreateMetadataDocument stores a published metadata document
func (s *pgStore) CreateMetadataDocument(ctx context.Context, doc *schema.MetadataDocument) error {
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		return fmt.Errorf("failed to create metadata document: %w", err)
	}
	return nil
}

// GetMetadataDocument retrieves a published metadata document by ID
func (s *pgStore) GetMetadataDocument(ctx context.Context, id string) (*schema.MetadataDocument, error) {
	var doc schema.MetadataDocument
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get metadata document: %w", err)
	}
	return &doc, nil
}
