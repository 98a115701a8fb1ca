package store

import (
	"context"
	"sync"

	"github.com/yieldpilot/yieldpilot/internal/record"
)

// MemStore is an in-memory RecordStore.
//
// It mirrors the SQLite store's semantics exactly - occupied-slot
// rejection, missing-record failure, all-or-nothing mutation - so the
// harness and tests can exercise the record logic without a real
// persistence backend. Records are held in encoded form to keep the
// byte layout on the same code path as the durable store.
type MemStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

var _ RecordStore = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{slots: make(map[string][]byte)}
}

// Create writes a new record into an empty slot.
func (m *MemStore) Create(ctx context.Context, slotID string, rec *record.YieldRecord) error {
	slotID = record.CanonicalSlotID(slotID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.slots[slotID]; ok {
		return NewSlotOccupiedError(slotID)
	}
	m.slots[slotID] = rec.EncodeBinary()

	return nil
}

// Get returns a copy of the record in the slot.
func (m *MemStore) Get(ctx context.Context, slotID string) (*record.YieldRecord, error) {
	slotID = record.CanonicalSlotID(slotID)

	m.mu.Lock()
	defer m.mu.Unlock()

	blob, ok := m.slots[slotID]
	if !ok {
		return nil, NewRecordNotFoundError(slotID)
	}

	return record.DecodeBinary(blob)
}

// Mutate applies fn to the record in the slot under the store lock.
// fn runs against a decoded copy; the slot is only rewritten when fn
// returns nil (CP-2).
func (m *MemStore) Mutate(ctx context.Context, slotID string, fn func(*record.YieldRecord) error) error {
	slotID = record.CanonicalSlotID(slotID)

	m.mu.Lock()
	defer m.mu.Unlock()

	blob, ok := m.slots[slotID]
	if !ok {
		return NewRecordNotFoundError(slotID)
	}

	rec, err := record.DecodeBinary(blob)
	if err != nil {
		return err
	}

	if err := fn(rec); err != nil {
		return err
	}

	m.slots[slotID] = rec.EncodeBinary()

	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}

// Len returns the number of occupied slots. Used in tests.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}
