package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/openmint/marketplace/internal/adapter"
	"github.com/openmint/marketplace/internal/domain"
)

// ErrSigningDeclined is returned when the signer refuses to sign a transaction
var ErrSigningDeclined = errors.New("signing declined")

// Session is the read-only wallet context a flow runs against. Address is
// normalized to lowercase on construction.
type Session struct {
	address string
	chain   domain.Chain
}

// NewSession builds a session for the given account and chain
func NewSession(address string, chain domain.Chain) (*Session, error) {
	if !domain.IsValidAddress(address) {
		return nil, fmt.Errorf("invalid account address: %s", address)
	}
	return &Session{
		address: domain.NormalizeAddress(address),
		chain:   chain,
	}, nil
}

// Address returns the lowercase account address
func (s *Session) Address() string {
	return s.address
}

// Chain returns the chain the session is connected to
func (s *Session) Chain() domain.Chain {
	return s.chain
}

// Signer signs transactions on behalf of the session account
//
//go:generate mockgen -source=wallet.go -destination=../mocks/wallet.go -package=mocks -mock_names=Signer=MockSigner
type Signer interface {
	// Address returns the signing account
	Address() common.Address

	// SignTx signs tx for the given chain. Returns ErrSigningDeclined when the
	// signer refuses.
	SignTx(ctx context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// KeyFileSigner signs with a secp256k1 private key loaded from a hex key file
type KeyFileSigner struct {
	priv    *ecdsa.PrivateKey
	address common.Address
}

// NewKeyFileSigner loads the hex-encoded private key at path
func NewKeyFileSigner(fs adapter.FileSystem, path string) (*KeyFileSigner, error) {
	raw, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	hexKey := strings.TrimSpace(string(raw))
	hexKey = strings.TrimPrefix(hexKey, "0x")

	priv, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &KeyFileSigner{
		priv:    priv,
		address: crypto.PubkeyToAddress(priv.PublicKey),
	}, nil
}

// Address returns the signing account
func (s *KeyFileSigner) Address() common.Address {
	return s.address
}

// SignTx signs tx with the loaded key using EIP-155 replay protection
func (s *KeyFileSigner) SignTx(_ context.Context, tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainID), s.priv)
}
