// Package record defines the yield record and its guarded mutation rules.
//
// A YieldRecord is owned by exactly one Authority, fixed at creation.
// Only that authority may overwrite the active protocol selector and the
// APY value; an update by any other identity fails with UNAUTHORIZED and
// leaves the record byte-for-byte unchanged.
//
// # Critical Patterns
//
// CP-1: Authority Immutability
//   - The authority is written once by New and never rewritten
//   - No operation in this package (or any caller) mutates it
//
// CP-2: All-or-Nothing Updates
//   - ApplyUpdate either overwrites both fields or returns before
//     touching the record
//   - There is no observable intermediate state
//
// CP-3: Fixed Binary Layout
//   - Records encode to exactly 35 bytes: 32-byte authority, 1-byte
//     protocol selector, 2-byte little-endian APY in basis points
//   - The layout never changes; compatibility with existing encoded
//     records depends on it
//
// Neither the protocol selector nor the APY value is range-checked.
// Both are advisory values sourced off-record; any u8/u16 is accepted.
package record
