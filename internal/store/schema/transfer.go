package schema

import (
	"time"
)

// Transfer represents the transfers table - an append-only audit log of
// confirmed ownership transfers. Rows are never updated or deleted.
type Transfer struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// NFTID references the transferred token
	NFTID int64 `gorm:"column:nft_id;not null;index:idx_transfers_nft"`
	// FromAddress is the sender, lowercased
	FromAddress string `gorm:"column:from_address;not null;type:text"`
	// ToAddress is the recipient, lowercased
	ToAddress string `gorm:"column:to_address;not null;type:text"`
	// TxHash is the confirmed transaction hash
	TxHash string `gorm:"column:tx_hash;not null;uniqueIndex;type:text"`
	// CreatedAt is the timestamp when the transfer was persisted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Transfer model
func (Transfer) TableName() string {
	return "transfers"
}
