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
	"github.com/openmint/marketplace/internal/wallet"
)

// ErrNotTokenOwner is returned when the connected wallet does not own the
// token according to the chain
var ErrNotTokenOwner = errors.New("connected wallet does not own this token")

// ErrOwnershipUnverified is returned when Submit is called before a
// successful on-chain ownership check
var ErrOwnershipUnverified = errors.New("ownership has not been verified on-chain")

// Transfer drives a single transfer dialog session for one token. Before a
// transfer may be submitted, ownership is re-checked against the chain rather
// than trusted from the off-chain record; Submit independently refuses to run
// until that check has passed.
//
// Confirmation handling follows the same idempotent reducer contract as Mint.
type Transfer struct {
	session  *wallet.Session
	contract contract.Client
	gateway  gateway.Client

	contractAddress string
	tokenNumber     string

	state                State
	ownershipVerified    bool
	chainOwner           string
	attempt              int
	lastPersistedAttempt int
	lastProcessedTx      string

	pendingTx        string
	pendingRecipient string

	result  *domain.TransferRecord
	failure *domain.AttemptError
}

// NewTransfer creates a transfer orchestrator for one token
func NewTransfer(session *wallet.Session, contractClient contract.Client, gw gateway.Client, contractAddress, tokenNumber string) (*Transfer, error) {
	if !domain.IsValidTokenNumber(tokenNumber) {
		return nil, fmt.Errorf("invalid token number: %s", tokenNumber)
	}
	return &Transfer{
		session:         session,
		contract:        contractClient,
		gateway:         gw,
		contractAddress: domain.NormalizeAddress(contractAddress),
		tokenNumber:     tokenNumber,
		state:           StateEditing,
	}, nil
}

// State returns the current lifecycle phase
func (t *Transfer) State() State {
	return t.state
}

// Attempt returns the sequence number of the current attempt
func (t *Transfer) Attempt() int {
	return t.attempt
}

// Result returns the persisted record after a successful attempt
func (t *Transfer) Result() *domain.TransferRecord {
	return t.result
}

// Failure returns the terminal error of the last failed attempt
func (t *Transfer) Failure() *domain.AttemptError {
	return t.failure
}

// TokenNumber returns the token this dialog transfers
func (t *Transfer) TokenNumber() string {
	return t.tokenNumber
}

// PendingTx returns the hash of the transaction currently awaiting confirmation
func (t *Transfer) PendingTx() string {
	return t.pendingTx
}

// CanClose reports whether the dialog may be dismissed
func (t *Transfer) CanClose() bool {
	return !t.state.InFlight()
}

// Reset returns the dialog to a fresh editing session with every counter and
// guard back at its initial value. Ownership must be re-verified afterwards.
// Confirmations for transactions broadcast before the reset are keyed off
// pendingTx, which the reset clears, so they stay inert.
func (t *Transfer) Reset() error {
	if !t.CanClose() {
		return ErrDialogBusy
	}

	t.state = StateEditing
	t.ownershipVerified = false
	t.chainOwner = ""
	t.attempt = 0
	t.lastPersistedAttempt = 0
	t.lastProcessedTx = ""
	t.pendingTx = ""
	t.pendingRecipient = ""
	t.result = nil
	t.failure = nil
	return nil
}

// VerifyOwnership checks on-chain that the session wallet owns the token and
// feeds the outcome to HandleOwnershipResult
func (t *Transfer) VerifyOwnership(ctx context.Context) error {
	owner, err := t.contract.OwnerOf(ctx, t.tokenNumber)
	return t.HandleOwnershipResult(owner, err)
}

// HandleOwnershipResult records the outcome of an on-chain ownership check.
// A failed check, or an owner other than the session wallet, leaves the
// submit gate closed.
func (t *Transfer) HandleOwnershipResult(owner string, err error) error {
	if err != nil {
		t.ownershipVerified = false
		t.chainOwner = ""
		return fmt.Errorf("ownership check failed: %w", err)
	}

	t.chainOwner = domain.NormalizeAddress(owner)
	t.ownershipVerified = domain.SameAddress(t.chainOwner, t.session.Address())
	if !t.ownershipVerified {
		return ErrNotTokenOwner
	}
	return nil
}

// SubmitEnabled reports whether a transfer may be submitted right now
func (t *Transfer) SubmitEnabled() bool {
	return t.ownershipVerified && !t.state.InFlight() && t.state != StateSucceeded
}

// Submit runs one transfer attempt up to transaction broadcast and returns
// the transaction hash
func (t *Transfer) Submit(ctx context.Context, recipient string) (string, error) {
	if t.state.InFlight() {
		return "", ErrAttemptInProgress
	}
	if !t.ownershipVerified {
		return "", ErrOwnershipUnverified
	}

	t.attempt++
	t.failure = nil
	t.result = nil
	t.pendingTx = ""
	t.pendingRecipient = ""

	t.state = StateValidating
	if err := t.validateRecipient(recipient); err != nil {
		return "", t.fail(domain.FailureValidation, err)
	}
	recipient = domain.NormalizeAddress(recipient)

	t.state = StateAwaitingSignature
	txHash, err := t.contract.SafeTransferFrom(ctx, t.session.Address(), recipient, t.tokenNumber)
	if err != nil {
		if errors.Is(err, wallet.ErrSigningDeclined) {
			return "", t.fail(domain.FailureSignatureRejected, err)
		}
		if cancelled(ctx) {
			return "", t.cancel()
		}
		return "", t.fail(domain.FailureChain, err)
	}

	t.state = StateConfirming
	t.pendingTx = txHash
	t.pendingRecipient = recipient

	logger.InfoCtx(ctx, "Transfer transaction broadcast",
		zap.String("txHash", txHash),
		zap.Int("attempt", t.attempt),
		zap.String("tokenNumber", t.tokenNumber),
		zap.String("to", recipient))

	return txHash, nil
}

// HandleConfirmation reduces a confirmation outcome into at most one persisted
// transfer record. Safe to call with re-delivered or stale confirmations.
func (t *Transfer) HandleConfirmation(ctx context.Context, txHash string, attemptSeq int, receipt *types.Receipt, confirmErr error) error {
	// Only the transaction broadcast by the current attempt is reducible;
	// after a reset or a newer broadcast, deliveries for older transactions
	// land here and are dropped
	if txHash == "" || txHash != t.pendingTx {
		return nil
	}
	if txHash == t.lastProcessedTx || attemptSeq <= t.lastPersistedAttempt {
		return nil
	}

	// Advance both guards before any persistence so a re-fired confirmation
	// can never write twice
	t.lastProcessedTx = txHash
	t.lastPersistedAttempt = attemptSeq

	if confirmErr != nil {
		return t.fail(domain.FailureChain, confirmErr)
	}
	if receipt == nil {
		return t.fail(domain.FailureChain, errors.New("confirmation delivered without a receipt"))
	}

	record := &domain.TransferRecord{
		TokenNumber:     t.tokenNumber,
		ContractAddress: t.contractAddress,
		FromAddress:     t.session.Address(),
		ToAddress:       t.pendingRecipient,
		TxHash:          txHash,
	}

	if err := t.gateway.CreateTransfer(ctx, record); err != nil {
		return t.fail(domain.FailurePersistence, err)
	}

	t.state = StateSucceeded
	t.result = record
	// Ownership moved away from the session wallet, so a further submit on
	// this dialog must re-verify first
	t.ownershipVerified = false

	logger.InfoCtx(ctx, "Transfer confirmed and persisted",
		zap.String("txHash", txHash),
		zap.String("tokenNumber", t.tokenNumber),
		zap.String("to", t.pendingRecipient))

	return nil
}

// fail moves the attempt to its terminal failed state
func (t *Transfer) fail(kind domain.FailureKind, err error) error {
	t.state = StateFailed
	t.failure = domain.NewAttemptError(kind, err)
	return t.failure
}

// cancel aborts a pre-broadcast attempt back to editing
func (t *Transfer) cancel() error {
	t.state = StateEditing
	t.failure = nil
	return context.Canceled
}

// validateRecipient checks the destination address of a transfer
func (t *Transfer) validateRecipient(recipient string) error {
	if !domain.IsValidAddress(recipient) {
		return fmt.Errorf("recipient must be a 0x-prefixed hex-40 address: %q", recipient)
	}
	if domain.SameAddress(recipient, t.session.Address()) {
		return errors.New("cannot transfer a token to yourself")
	}
	if domain.SameAddress(recipient, domain.ZeroAddress) {
		return errors.New("cannot transfer a token to the zero address")
	}
	return nil
}
