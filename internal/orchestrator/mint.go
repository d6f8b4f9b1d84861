package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/openmint/marketplace/internal/contract"
	"github.com/openmint/marketplace/internal/domain"
	"github.com/openmint/marketplace/internal/gateway"
	"github.com/openmint/marketplace/internal/logger"
	"github.com/openmint/marketplace/internal/metadata"
	"github.com/openmint/marketplace/internal/wallet"
)

// ErrAttemptInProgress is returned when Submit is called while a previous
// attempt has not reached a terminal state
var ErrAttemptInProgress = errors.New("an attempt is already in progress")

// ErrDialogBusy is returned when Reset is called while an attempt is in flight
var ErrDialogBusy = errors.New("cannot reset while an attempt is in flight")

// MintInput is the user-provided content of a mint attempt
type MintInput struct {
	Name        string
	Description string
	Filename    string
	Asset       []byte
	Price       float64
	Listed      bool
}

// Mint drives a single mint dialog session: validate input, upload the
// artwork, publish metadata, submit the mint transaction, then reduce the
// confirmation into exactly one persisted NFT record.
//
// Each call to Submit is one attempt carrying a strictly increasing sequence
// number. HandleConfirmation is an idempotent reducer: only the transaction
// broadcast by the current attempt is reducible, and a confirmation already
// processed, or for an attempt at or below the last persisted one, is
// dropped. The guards are advanced before the persistence call so a
// re-delivered confirmation can never persist twice, even when persistence
// itself failed.
type Mint struct {
	session  *wallet.Session
	contract contract.Client
	metadata metadata.Publisher
	gateway  gateway.Client

	contractAddress string

	state                State
	attempt              int
	lastPersistedAttempt int
	lastProcessedTx      string

	pendingTx          string
	pendingInput       MintInput
	pendingImageURL    string
	pendingMetadataURL string

	result  *domain.NFTRecord
	failure *domain.AttemptError
}

// NewMint creates a mint orchestrator for one dialog session
func NewMint(session *wallet.Session, contractClient contract.Client, publisher metadata.Publisher, gw gateway.Client, contractAddress string) *Mint {
	return &Mint{
		session:         session,
		contract:        contractClient,
		metadata:        publisher,
		gateway:         gw,
		contractAddress: domain.NormalizeAddress(contractAddress),
		state:           StateEditing,
	}
}

// State returns the current lifecycle phase
func (m *Mint) State() State {
	return m.state
}

// Attempt returns the sequence number of the current attempt
func (m *Mint) Attempt() int {
	return m.attempt
}

// Result returns the persisted record after a successful attempt
func (m *Mint) Result() *domain.NFTRecord {
	return m.result
}

// Failure returns the terminal error of the last failed attempt
func (m *Mint) Failure() *domain.AttemptError {
	return m.failure
}

// CanClose reports whether the dialog may be dismissed. Dismissal is blocked
// while an attempt is in flight so a confirmation is never dropped.
func (m *Mint) CanClose() bool {
	return !m.state.InFlight()
}

// Reset returns the dialog to a fresh editing session with every counter and
// guard back at its initial value. Confirmations for transactions broadcast
// before the reset are keyed off pendingTx, which the reset clears, so they
// stay inert.
func (m *Mint) Reset() error {
	if !m.CanClose() {
		return ErrDialogBusy
	}

	m.state = StateEditing
	m.attempt = 0
	m.lastPersistedAttempt = 0
	m.lastProcessedTx = ""
	m.pendingTx = ""
	m.pendingInput = MintInput{}
	m.pendingImageURL = ""
	m.pendingMetadataURL = ""
	m.result = nil
	m.failure = nil
	return nil
}

// Submit runs one mint attempt up to transaction broadcast and returns the
// transaction hash. The caller then awaits the confirmation and feeds it to
// HandleConfirmation together with the attempt sequence returned by Attempt.
//
// Cancelling ctx before the wallet signs aborts the attempt cleanly back to
// the editing state; after broadcast the transaction is out of our hands.
func (m *Mint) Submit(ctx context.Context, input MintInput) (string, error) {
	if m.state.InFlight() {
		return "", ErrAttemptInProgress
	}

	m.attempt++
	m.failure = nil
	m.result = nil
	m.pendingTx = ""
	m.pendingInput = MintInput{}
	m.pendingImageURL = ""
	m.pendingMetadataURL = ""

	m.state = StateValidating
	if err := validateMintInput(input); err != nil {
		return "", m.fail(domain.FailureValidation, err)
	}

	m.state = StateUploading
	upload, err := m.gateway.UploadAsset(ctx, input.Filename, input.Asset)
	if err != nil {
		if cancelled(ctx) {
			return "", m.cancel()
		}
		return "", m.fail(domain.FailureUpload, err)
	}

	m.state = StatePublishingMetadata
	metadataURL, err := m.metadata.Publish(ctx, domain.TokenMetadata{
		Name:        input.Name,
		Description: input.Description,
		Image:       upload.URL,
	})
	if err != nil {
		if cancelled(ctx) {
			return "", m.cancel()
		}
		return "", m.fail(domain.FailureMetadata, err)
	}

	m.state = StateAwaitingSignature
	txHash, err := m.contract.Mint(ctx, m.session.Address(), metadataURL)
	if err != nil {
		if errors.Is(err, wallet.ErrSigningDeclined) {
			return "", m.fail(domain.FailureSignatureRejected, err)
		}
		if cancelled(ctx) {
			return "", m.cancel()
		}
		return "", m.fail(domain.FailureChain, err)
	}

	m.state = StateConfirming
	m.pendingTx = txHash
	m.pendingInput = input
	m.pendingImageURL = upload.URL
	m.pendingMetadataURL = metadataURL

	logger.InfoCtx(ctx, "Mint transaction broadcast",
		zap.String("txHash", txHash),
		zap.Int("attempt", m.attempt),
		zap.String("minter", m.session.Address()))

	return txHash, nil
}

// HandleConfirmation reduces a confirmation outcome into at most one persisted
// record. Safe to call with re-delivered or stale confirmations.
func (m *Mint) HandleConfirmation(ctx context.Context, txHash string, attemptSeq int, receipt *types.Receipt, confirmErr error) error {
	// Only the transaction broadcast by the current attempt is reducible;
	// after a reset or a newer broadcast, deliveries for older transactions
	// land here and are dropped
	if txHash == "" || txHash != m.pendingTx {
		return nil
	}
	if txHash == m.lastProcessedTx || attemptSeq <= m.lastPersistedAttempt {
		return nil
	}

	// Advance both guards before any persistence so a re-fired confirmation
	// can never write twice
	m.lastProcessedTx = txHash
	m.lastPersistedAttempt = attemptSeq

	if confirmErr != nil {
		return m.fail(domain.FailureChain, confirmErr)
	}
	if receipt == nil {
		return m.fail(domain.FailureChain, errors.New("confirmation delivered without a receipt"))
	}

	tokenNumber, err := contract.MintedTokenNumber(receipt.Logs, m.session.Address())
	if err != nil {
		// The token exists on-chain but we cannot identify it. Surfaced for
		// manual recovery, never auto-retried.
		return m.fail(domain.FailureTokenIdentifierNotFound, err)
	}

	record := &domain.NFTRecord{
		TokenNumber:     tokenNumber,
		ContractAddress: m.contractAddress,
		OwnerAddress:    m.session.Address(),
		Name:            m.pendingInput.Name,
		Description:     m.pendingInput.Description,
		ImageURL:        m.pendingImageURL,
		MetadataURL:     m.pendingMetadataURL,
		Price:           m.pendingInput.Price,
		Listed:          m.pendingInput.Listed,
	}

	if err := m.gateway.CreateNFT(ctx, record); err != nil {
		return m.fail(domain.FailurePersistence, err)
	}

	m.state = StateSucceeded
	m.result = record

	logger.InfoCtx(ctx, "Mint confirmed and persisted",
		zap.String("txHash", txHash),
		zap.String("tokenNumber", tokenNumber),
		zap.String("owner", m.session.Address()))

	return nil
}

// PendingTx returns the hash of the transaction currently awaiting confirmation
func (m *Mint) PendingTx() string {
	return m.pendingTx
}

// fail moves the attempt to its terminal failed state
func (m *Mint) fail(kind domain.FailureKind, err error) error {
	m.state = StateFailed
	m.failure = domain.NewAttemptError(kind, err)
	return m.failure
}

// cancel aborts a pre-broadcast attempt back to editing
func (m *Mint) cancel() error {
	m.state = StateEditing
	m.failure = nil
	return context.Canceled
}

// cancelled reports whether ctx was cancelled (not merely timed out upstream)
func cancelled(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

// validateMintInput checks the user-provided mint content
func validateMintInput(input MintInput) error {
	if input.Name == "" {
		return errors.New("name is required")
	}
	if len(input.Asset) == 0 {
		return errors.New("artwork asset is required")
	}
	if input.Filename == "" {
		return errors.New("artwork filename is required")
	}
	if input.Price < 0 {
		return fmt.Errorf("price must not be negative: %f", input.Price)
	}
	return nil
}
