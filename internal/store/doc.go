// Package store provides storage backends for yield records.
//
// Two implementations of RecordStore exist:
//   - Store: SQLite-backed durable storage (production)
//   - MemStore: mutex-guarded map (harness and tests)
//
// Both persist records in the fixed 35-byte binary layout defined by
// package record, keyed by NFC-canonicalized slot ID.
//
// # Critical Patterns
//
// CP-1: Slot Occupancy
//   - Create into an occupied slot fails with SLOT_OCCUPIED
//   - The record logic itself never checks existence; rejection lives here
//
// CP-2: Atomic Mutation
//   - Mutate runs the caller's function against a private copy inside a
//     transaction; an error discards the whole attempt
//   - A failed update is observationally a no-op
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
