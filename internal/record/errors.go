package record

import (
	"errors"
	"fmt"
)

// AccessError represents a rejected record operation.
//
// The only code this package raises is UNAUTHORIZED: the invoking
// identity does not match the record's stored authority. The error is
// surfaced verbatim to the caller; there is no retry or recovery path.
type AccessError struct {
	// Code identifies the error category.
	Code AccessErrorCode

	// Message is a human-readable description.
	Message string

	// Want is the authority stored on the record.
	Want Authority

	// Got is the identity that attempted the operation.
	Got Authority
}

// AccessErrorCode categorizes access errors.
type AccessErrorCode string

const (
	// ErrCodeUnauthorized indicates the caller is not the record's authority.
	ErrCodeUnauthorized AccessErrorCode = "UNAUTHORIZED"
)

// Error implements the error interface.
func (e *AccessError) Error() string {
	return fmt.Sprintf("%s: %s (want=%s, got=%s)", e.Code, e.Message, e.Want, e.Got)
}

// IsUnauthorized returns true if the error is an authority mismatch.
// Uses errors.As to handle wrapped errors.
func IsUnauthorized(err error) bool {
	var ae *AccessError
	if errors.As(err, &ae) {
		return ae.Code == ErrCodeUnauthorized
	}
	return false
}

// NewUnauthorizedError creates an AccessError for an authority mismatch.
func NewUnauthorizedError(want, got Authority) *AccessError {
	return &AccessError{
		Code:    ErrCodeUnauthorized,
		Message: "caller is not the record authority",
		Want:    want,
		Got:     got,
	}
}
