package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenNotFound is returned when a token is not found in the store
	ErrTokenNotFound = errors.New("token not found")

	// ErrMintEventNotFound is returned when a confirmed mint receipt carries no
	// ownership-transfer event for the minting address
	ErrMintEventNotFound = errors.New("mint transfer event not found in receipt")

	// ErrInvalidMediaType is returned when an uploaded asset is not an image
	ErrInvalidMediaType = errors.New("asset is not an image")

	// ErrDuplicateRecord is returned when a unique constraint rejects a write
	ErrDuplicateRecord = errors.New("record already exists")
)

// FailureKind classifies the terminal failure of a mint or transfer attempt.
// The classification decides what the user may safely do next: pre-chain
// failures permit a plain retry, post-chain failures require manual recovery
// because the on-chain effect is already real.
type FailureKind string

const (
	// FailureValidation - local input validation failed, nothing was attempted
	FailureValidation FailureKind = "validation"
	// FailureUpload - asset upload failed before any on-chain effect
	FailureUpload FailureKind = "upload"
	// FailureMetadata - metadata publish failed before any on-chain effect
	FailureMetadata FailureKind = "metadata"
	// FailureSignatureRejected - the wallet declined to sign, no effect
	FailureSignatureRejected FailureKind = "signature_rejected"
	// FailureChain - the transaction reverted or failed to confirm
	FailureChain FailureKind = "chain"
	// FailureTokenIdentifierNotFound - minted on-chain but the receipt carried
	// no usable token identifier, so the off-chain record cannot be linked
	FailureTokenIdentifierNotFound FailureKind = "token_identifier_not_found"
	// FailurePersistence - the on-chain effect is valid but off-chain
	// bookkeeping failed
	FailurePersistence FailureKind = "persistence"
)

// AttemptError is the terminal error of one mint or transfer attempt.
// ManualRecovery marks kinds that must never be auto-retried: retrying could
// mint a second token or duplicate a record.
type AttemptError struct {
	Kind FailureKind
	Err  error
}

func (e *AttemptError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}

// ManualRecovery reports whether the failure left a real on-chain effect
// behind that the off-chain side could not account for.
func (e *AttemptError) ManualRecovery() bool {
	return e.Kind == FailureTokenIdentifierNotFound || e.Kind == FailurePersistence
}

// Retryable reports whether the user may safely retry the whole attempt
func (e *AttemptError) Retryable() bool {
	return !e.ManualRecovery()
}

// NewAttemptError wraps err with a failure classification
func NewAttemptError(kind FailureKind, err error) *AttemptError {
	return &AttemptError{Kind: kind, Err: err}
}

// AttemptErrorKind extracts the failure kind from err, or "" when err is not
// an attempt error
func AttemptErrorKind(err error) FailureKind {
	var ae *AttemptError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}
