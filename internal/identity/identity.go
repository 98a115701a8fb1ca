// Package identity resolves call contexts to verified authorities.
//
// Cryptographic signature verification belongs to the host environment;
// this package models it as a trusted oracle. A Verifier maps whatever
// the host attests about an invocation (the signer reference) to the
// caller's 32-byte identity. The record logic consumes the verified
// Authority and nothing else.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/yieldpilot/yieldpilot/internal/record"
)

// CallContext carries what the host hands the logic about an invocation.
// For this deployment that is a signer name; the host has already
// checked the signature behind it.
type CallContext struct {
	// Signer names the identity that signed the invocation.
	Signer string
}

// Verifier resolves a call context to a verified caller identity.
// Implemented by Keyring (production) and Static (tests).
type Verifier interface {
	Verify(ctx context.Context, call CallContext) (record.Authority, error)
}

// VerifyError represents a failed identity resolution.
type VerifyError struct {
	// Code identifies the error category.
	Code VerifyErrorCode

	// Message is a human-readable description.
	Message string

	// Signer is the signer reference that failed to resolve.
	Signer string
}

// VerifyErrorCode categorizes verification errors.
type VerifyErrorCode string

const (
	// ErrCodeUnknownSigner indicates the signer is not in the keyring.
	ErrCodeUnknownSigner VerifyErrorCode = "UNKNOWN_SIGNER"
)

// Error implements the error interface.
func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s: %s (signer=%s)", e.Code, e.Message, e.Signer)
}

// IsUnknownSigner returns true if the error is an unknown-signer failure.
// Uses errors.As to handle wrapped errors.
func IsUnknownSigner(err error) bool {
	var ve *VerifyError
	if errors.As(err, &ve) {
		return ve.Code == ErrCodeUnknownSigner
	}
	return false
}

// NewUnknownSignerError creates a VerifyError for an unresolvable signer.
func NewUnknownSignerError(signer string) *VerifyError {
	return &VerifyError{
		Code:    ErrCodeUnknownSigner,
		Message: "signer not present in keyring",
		Signer:  signer,
	}
}

// Static is a fixed in-memory Verifier for tests.
// It resolves exactly the entries it was built with.
type Static map[string]record.Authority

// Verify implements Verifier.
func (s Static) Verify(ctx context.Context, call CallContext) (record.Authority, error) {
	a, ok := s[call.Signer]
	if !ok {
		return record.Authority{}, NewUnknownSignerError(call.Signer)
	}
	return a, nil
}
