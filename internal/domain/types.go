package domain

import (
	"math/big"
	"regexp"
	"strings"
	"time"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainOptimism        Chain = "eip155:10"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainOptimism
}

const (
	// ZeroAddress is the Ethereum zero address, the sender of mint transfers
	ZeroAddress = "0x0000000000000000000000000000000000000000"
)

// addressPattern is the strict recipient format: 0x followed by exactly 40 hex characters
var addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// tokenNumberPattern matches unsigned decimal token numbers
var tokenNumberPattern = regexp.MustCompile(`^[0-9]+$`)

// IsValidAddress reports whether s matches the strict hex-40 address format
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// IsValidTokenNumber reports whether s is a decimal unsigned integer
func IsValidTokenNumber(s string) bool {
	return s != "" && tokenNumberPattern.MatchString(s)
}

// NormalizeAddress lowercases an address for equality comparisons and storage.
// Owner addresses are persisted lowercase so wallet comparisons never depend on
// checksum casing.
func NormalizeAddress(addr string) string {
	return strings.ToLower(addr)
}

// SameAddress compares two addresses case-insensitively
func SameAddress(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

// TokenMetadata is the metadata document published for a token and referenced
// by its tokenURI
type TokenMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
}

// NFTRecord is the off-chain record of a minted token. OwnerAddress is a cache
// of on-chain truth: it is only written as a result of an observed, confirmed
// transaction.
type NFTRecord struct {
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
	CreatedAt       time.Time              `json:"created_at,omitempty"`
	UpdatedAt       time.Time              `json:"updated_at,omitempty"`
}

// TransferRecord is an append-only audit entry for a completed ownership
// transfer. It is never mutated after creation.
type TransferRecord struct {
	TokenNumber     string    `json:"token_number"`
	ContractAddress string    `json:"contract_address"`
	FromAddress     string    `json:"from_address"`
	ToAddress       string    `json:"to_address"`
	TxHash          string    `json:"tx_hash"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}

// UserRecord identifies a wallet that has used the marketplace
type UserRecord struct {
	Address   string    `json:"address"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ListingUpdate changes the sale state of an NFT record
type ListingUpdate struct {
	TokenNumber     string  `json:"token_number"`
	ContractAddress string  `json:"contract_address"`
	Price           float64 `json:"price"`
	Listed          bool    `json:"listed"`
}

// WeiPerEth converts an ETH amount expressed as a float into wei.
// Precision above 18 decimals is truncated.
func WeiPerEth(eth float64) *big.Int {
	wei, _ := new(big.Float).Mul(big.NewFloat(eth), big.NewFloat(1e18)).Int(nil)
	return wei
}
