package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/yieldpilot/yieldpilot/internal/record"
)

// RecordStore is the storage collaborator for yield records.
//
// The record logic never allocates or looks up storage itself; callers
// hand it a slot through one of these methods. Implementations must
// present each call as an indivisible step - no torn reads, no partial
// writes.
type RecordStore interface {
	// Create writes a new record into an empty slot.
	// Fails with SLOT_OCCUPIED if the slot already holds a record.
	Create(ctx context.Context, slotID string, rec *record.YieldRecord) error

	// Get returns a copy of the record in the slot.
	// Fails with RECORD_NOT_FOUND if the slot is empty.
	Get(ctx context.Context, slotID string) (*record.YieldRecord, error)

	// Mutate applies fn to the record in the slot atomically.
	// fn receives a private copy; if it returns an error the stored
	// record is left completely unmodified (CP-2).
	// Fails with RECORD_NOT_FOUND if the slot is empty.
	Mutate(ctx context.Context, slotID string, fn func(*record.YieldRecord) error) error

	// Close releases the backing resources.
	Close() error
}

// StoreError represents a storage-layer failure.
//
// These codes are outside the record logic's own error taxonomy -
// occupancy and existence are storage concerns, authorization is not.
type StoreError struct {
	// Code identifies the error category.
	Code StoreErrorCode

	// Message is a human-readable description.
	Message string

	// SlotID identifies the affected slot.
	SlotID string
}

// StoreErrorCode categorizes storage errors.
type StoreErrorCode string

const (
	// ErrCodeSlotOccupied indicates a create into a slot that already holds a record.
	ErrCodeSlotOccupied StoreErrorCode = "SLOT_OCCUPIED"

	// ErrCodeRecordNotFound indicates a read or mutate on an empty slot.
	ErrCodeRecordNotFound StoreErrorCode = "RECORD_NOT_FOUND"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s (slot=%s)", e.Code, e.Message, e.SlotID)
}

// IsSlotOccupied returns true if the error is an occupied-slot rejection.
// Uses errors.As to handle wrapped errors.
func IsSlotOccupied(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeSlotOccupied
	}
	return false
}

// IsRecordNotFound returns true if the error is a missing-record failure.
// Uses errors.As to handle wrapped errors.
func IsRecordNotFound(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeRecordNotFound
	}
	return false
}

// NewSlotOccupiedError creates a StoreError for a create into an occupied slot.
func NewSlotOccupiedError(slotID string) *StoreError {
	return &StoreError{
		Code:    ErrCodeSlotOccupied,
		Message: "slot already holds a record",
		SlotID:  slotID,
	}
}

// NewRecordNotFoundError creates a StoreError for an empty slot.
func NewRecordNotFoundError(slotID string) *StoreError {
	return &StoreError{
		Code:    ErrCodeRecordNotFound,
		Message: "no record in slot",
		SlotID:  slotID,
	}
}
