package cli

import "github.com/google/uuid"

// SlotIDGenerator mints slot IDs for records created without an explicit
// slot argument.
// Implemented by UUIDGenerator (production) and testutil.FixedSlotGenerator (tests).
type SlotIDGenerator interface {
	Generate() string
}

// UUIDGenerator mints random UUID slot IDs.
type UUIDGenerator struct{}

// Generate returns a new random UUID string.
func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}
