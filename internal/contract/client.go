package contract

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/openmint/marketplace/internal/adapter"
	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/logger"
	"github.com/openmint/marketplace/internal/wallet"
)

// ErrConfirmationTimeout is returned when a transaction is not mined within
// the configured confirmation window
var ErrConfirmationTimeout = fmt.Errorf("confirmation timed out")

// ErrTransactionReverted is returned when a mined transaction has a failed status
var ErrTransactionReverted = fmt.Errorf("transaction reverted")

// Config holds the minting contract parameters
type Config struct {
	ContractAddress     string
	MintValueWei        *big.Int
	TransferGasLimit    uint64
	ConfirmPollInterval time.Duration
	ConfirmTimeout      time.Duration
}

// Client drives the marketplace's ERC721 minting contract
//
//go:generate mockgen -source=client.go -destination=../mocks/contract.go -package=mocks -mock_names=Client=MockContractClient
type Client interface {
	// Mint submits a payable mint(to, tokenURI) transaction and returns its hash
	Mint(ctx context.Context, to string, tokenURI string) (string, error)

	// SafeTransferFrom submits a safeTransferFrom(from, to, tokenId) transaction
	// and returns its hash
	SafeTransferFrom(ctx context.Context, from, to, tokenNumber string) (string, error)

	// OwnerOf fetches the current owner of a token, lowercased
	OwnerOf(ctx context.Context, tokenNumber string) (string, error)

	// WaitForConfirmation polls until the transaction is mined, returning its receipt
	WaitForConfirmation(ctx context.Context, txHash string) (*types.Receipt, error)

	// Close closes the underlying connection
	Close()
}

type client struct {
	cfg    Config
	eth    adapter.EthClient
	signer wallet.Signer
	clock  adapter.Clock

	chainIDOnce sync.Once
	chainID     *big.Int
	chainIDErr  error
}

// NewClient creates a contract client bound to one signer account
func NewClient(cfg Config, eth adapter.EthClient, signer wallet.Signer, clock adapter.Clock) Client {
	return &client{
		cfg:    cfg,
		eth:    eth,
		signer: signer,
		clock:  clock,
	}
}

// networkID fetches and caches the chain ID used for EIP-155 signing
func (c *client) networkID(ctx context.Context) (*big.Int, error) {
	c.chainIDOnce.Do(func() {
		c.chainID, c.chainIDErr = c.eth.NetworkID(ctx)
	})
	return c.chainID, c.chainIDErr
}

// Mint submits a payable mint(to, tokenURI) transaction and returns its hash
func (c *client) Mint(ctx context.Context, to string, tokenURI string) (string, error) {
	// mint function signature: mint(address to, string tokenURI) payable
	mintABI, err := abi.JSON(strings.NewReader(`[{"inputs":[{"name":"to","type":"address"},{"name":"tokenURI","type":"string"}],"name":"mint","outputs":[],"payable":true,"stateMutability":"payable","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	data, err := mintABI.Pack("mint", common.HexToAddress(to), tokenURI)
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	return c.submit(ctx, data, c.cfg.MintValueWei, 0)
}

// SafeTransferFrom submits a safeTransferFrom(from, to, tokenId) transaction
// and returns its hash
func (c *client) SafeTransferFrom(ctx context.Context, from, to, tokenNumber string) (string, error) {
	// safeTransferFrom function signature: safeTransferFrom(address,address,uint256)
	transferABI, err := abi.JSON(strings.NewReader(`[{"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"tokenId","type":"uint256"}],"name":"safeTransferFrom","outputs":[],"stateMutability":"nonpayable","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	tokenID, ok := new(big.Int).SetString(tokenNumber, 10)
	if !ok {
		return "", fmt.Errorf("invalid token number: %s", tokenNumber)
	}

	data, err := transferABI.Pack("safeTransferFrom", common.HexToAddress(from), common.HexToAddress(to), tokenID)
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	return c.submit(ctx, data, big.NewInt(0), c.cfg.TransferGasLimit)
}

// submit signs and broadcasts a contract call. A zero gasLimit means the gas
// is estimated against the pending state.
func (c *client) submit(ctx context.Context, data []byte, value *big.Int, gasLimit uint64) (string, error) {
	chainID, err := c.networkID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get network id: %w", err)
	}

	from := c.signer.Address()
	contractAddr := common.HexToAddress(c.cfg.ContractAddress)

	nonce, err := c.eth.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	if gasLimit == 0 {
		gasLimit, err = c.eth.EstimateGas(ctx, ethereum.CallMsg{
			From:  from,
			To:    &contractAddr,
			Value: value,
			Data:  data,
		})
		if err != nil {
			return "", fmt.Errorf("failed to estimate gas: %w", err)
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &contractAddr,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := c.signer.SignTx(ctx, tx, chainID)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.eth.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash().Hex(), nil
}

// OwnerOf fetches the current owner of a token, lowercased
func (c *client) OwnerOf(ctx context.Context, tokenNumber string) (string, error) {
	// ERC721 ownerOf function signature: ownerOf(uint256) returns (address)
	ownerOfABI, err := abi.JSON(strings.NewReader(`[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	tokenID, ok := new(big.Int).SetString(tokenNumber, 10)
	if !ok {
		return "", fmt.Errorf("invalid token number: %s", tokenNumber)
	}

	data, err := ownerOfABI.Pack("ownerOf", tokenID)
	if err != nil {
		return "", fmt.Errorf("failed to pack data: %w", err)
	}

	contractAddr := common.HexToAddress(c.cfg.ContractAddress)
	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{
		To:   &contractAddr,
		Data: data,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to call contract: %w", err)
	}

	var owner common.Address
	if err := ownerOfABI.UnpackIntoInterface(&owner, "ownerOf", result); err != nil {
		return "", fmt.Errorf("failed to unpack result: %w", err)
	}

	return domain.NormalizeAddress(owner.Hex()), nil
}

// WaitForConfirmation polls until the transaction is mined, returning its
// receipt. Returns ErrTransactionReverted when the mined transaction failed,
// ErrConfirmationTimeout when the confirmation window elapses first.
func (c *client) WaitForConfirmation(ctx context.Context, txHash string) (*types.Receipt, error) {
	hash := common.HexToHash(txHash)
	deadline := c.clock.Now().Add(c.cfg.ConfirmTimeout)

	for {
		receipt, err := c.eth.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, ErrTransactionReverted
			}
			return receipt, nil
		}
		if err != nil && err != ethereum.NotFound {
			logger.Warn("failed to fetch receipt, retrying",
				zap.Error(err),
				zap.String("txHash", txHash))
		}

		if c.clock.Now().After(deadline) {
			return nil, ErrConfirmationTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.clock.After(c.cfg.ConfirmPollInterval):
		}
	}
}

// Close closes the underlying connection
func (c *client) Close() {
	c.eth.Close()
}
