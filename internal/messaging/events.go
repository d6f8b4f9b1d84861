package messaging

import (
	"time"

	"github.com/openmint/marketplace/internal/domain"
)

// EventType identifies the kind of marketplace event
type EventType string

const (
	// EventNFTMinted is published after a minted token record is persisted
	EventNFTMinted EventType = "nft.minted"
	// EventNFTTransferred is published after a transfer record is persisted
	EventNFTTransferred EventType = "nft.transferred"
	// EventListingUpdated is published after a listing change is persisted
	EventListingUpdated EventType = "listing.updated"
	// EventUserRegistered is published after a wallet registers or updates
	// its profile
	EventUserRegistered EventType = "user.registered"
)

// MarketplaceEvent is the message published to the event stream after a
// marketplace write succeeds. Consumers receive it strictly after the
// database commit, so the payload always describes persisted state.
type MarketplaceEvent struct {
	// ID is a unique event identifier (ULID)
	ID string `json:"id"`
	// EventType identifies the kind of event
	EventType EventType `json:"event_type"`
	// ContractAddress is the token contract, lowercased (empty for user events)
	ContractAddress string `json:"contract_address,omitempty"`
	// TokenNumber is the token the event concerns (empty for user events)
	TokenNumber string `json:"token_number,omitempty"`
	// OwnerAddress is the owner after the event was applied
	OwnerAddress string `json:"owner_address,omitempty"`
	// TxHash is the confirmed transaction hash behind the event, when any
	TxHash string `json:"tx_hash,omitempty"`
	// Timestamp is when the event was published
	Timestamp time.Time `json:"timestamp"`
}

// NewMintedEvent builds the event published after a mint record is persisted
func NewMintedEvent(id string, record *domain.NFTRecord, now time.Time) *MarketplaceEvent {
	return &MarketplaceEvent{
		ID:              id,
		EventType:       EventNFTMinted,
		ContractAddress: domain.NormalizeAddress(record.ContractAddress),
		TokenNumber:     record.TokenNumber,
		OwnerAddress:    domain.NormalizeAddress(record.OwnerAddress),
		Timestamp:       now,
	}
}

// NewTransferredEvent builds the event published after a transfer record is
// persisted
func NewTransferredEvent(id string, record *domain.TransferRecord, now time.Time) *MarketplaceEvent {
	return &MarketplaceEvent{
		ID:              id,
		EventType:       EventNFTTransferred,
		ContractAddress: domain.NormalizeAddress(record.ContractAddress),
		TokenNumber:     record.TokenNumber,
		OwnerAddress:    domain.NormalizeAddress(record.ToAddress),
		TxHash:          record.TxHash,
		Timestamp:       now,
	}
}
