package record

import (
	"encoding/hex"
	"fmt"
)

// AuthoritySize is the byte length of an Authority identifier.
const AuthoritySize = 32

// Authority is an opaque fixed-size public identifier. The surrounding
// environment attests it cryptographically; this package only ever
// compares authorities byte-wise.
type Authority [AuthoritySize]byte

// AuthorityFromBytes builds an Authority from a raw 32-byte slice.
func AuthorityFromBytes(b []byte) (Authority, error) {
	var a Authority
	if len(b) != AuthoritySize {
		return a, fmt.Errorf("authority must be %d bytes, got %d", AuthoritySize, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// AuthorityFromHex parses a 64-character hex string into an Authority.
func AuthorityFromHex(s string) (Authority, error) {
	var a Authority
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("invalid authority hex: %w", err)
	}
	if len(b) != AuthoritySize {
		return a, fmt.Errorf("authority must be %d bytes, got %d", AuthoritySize, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// Equal reports whether two authorities are the same identity.
// Byte-wise comparison is the whole authorization check.
func (a Authority) Equal(other Authority) bool {
	return a == other
}

// String returns the hex form of the authority.
func (a Authority) String() string {
	return hex.EncodeToString(a[:])
}

// YieldRecord is the sole entity: one authority, two mutable fields.
//
// Lifecycle: Uninitialized (no record exists) -> Active (created by New).
// Active is terminal - there is no deletion and no authority rotation.
type YieldRecord struct {
	// Authority is the only identity permitted to mutate this record.
	// Set exactly once, at creation (CP-1).
	Authority Authority `json:"authority"`

	// CurrentProtocol selects the active external yield source.
	// Any value 0-255 is accepted; no enumeration is enforced here.
	CurrentProtocol uint8 `json:"current_protocol"`

	// CurrentAPYBps is the yield rate in basis points (1/100 of a
	// percent). Any value 0-65535 is accepted.
	CurrentAPYBps uint16 `json:"current_apy_bps"`
}

// New creates an Active record owned by authority.
// Both yield fields start at zero.
func New(authority Authority) *YieldRecord {
	return &YieldRecord{Authority: authority}
}

// ApplyUpdate overwrites both yield fields if caller is the record's
// authority. On mismatch it returns an UNAUTHORIZED error and the record
// is left completely unmodified (CP-2).
//
// The new values are written unconditionally - no diffing, no bounds
// checks, no rate-of-change limits.
func (r *YieldRecord) ApplyUpdate(caller Authority, newProtocol uint8, newAPYBps uint16) error {
	if !caller.Equal(r.Authority) {
		return NewUnauthorizedError(r.Authority, caller)
	}

	r.CurrentProtocol = newProtocol
	r.CurrentAPYBps = newAPYBps

	return nil
}

// Clone returns an independent copy of the record.
// Store implementations hand mutation callbacks a clone so a failed
// update can never leak partial writes into stored state (CP-2).
func (r *YieldRecord) Clone() *YieldRecord {
	c := *r
	return &c
}
