package schema

import (
	"time"

	"gorm.io/datatypes"
)

// NFT represents the nfts table - the off-chain record of a minted token.
// The owner column is a cache of on-chain truth: it is only written as the
// result of an observed, confirmed transaction.
type NFT struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ContractAddress is the minting contract address, lowercased
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_nfts_contract_token,priority:1"`
	// TokenNumber is the token ID within the contract (string to support very large numbers)
	TokenNumber string `gorm:"column:token_number;not null;type:text;uniqueIndex:idx_nfts_contract_token,priority:2"`
	// OwnerAddress is the current owner's address, lowercased
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;index:idx_nfts_owner"`
	// Name is the artwork title
	Name string `gorm:"column:name;not null;type:text"`
	// Description is the optional artwork description
	Description string `gorm:"column:description;type:text"`
	// ImageURL is the hosted artwork location
	ImageURL string `gorm:"column:image_url;not null;type:text"`
	// MetadataURL is the published tokenURI document location
	MetadataURL string `gorm:"column:metadata_url;type:text"`
	// Attributes holds optional free-form trait data
	Attributes datatypes.JSON `gorm:"column:attributes;type:jsonb"`
	// Price is the listing price in ETH
	Price float64 `gorm:"column:price;not null;default:0"`
	// Listed indicates whether the token is offered for sale
	Listed bool `gorm:"column:listed;not null;default:false;index:idx_nfts_listed"`
	// CreatedAt is the timestamp when this record was persisted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp of the last change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`

	// Associations
	Transfers []Transfer `gorm:"foreignKey:NFTID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the NFT model
func (NFT) TableName() string {
	return "nfts"
}
