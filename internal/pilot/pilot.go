// Package pilot wires identity verification and record storage into the
// two operations the system exposes: create a record, update its yield.
package pilot

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/yieldpilot/yieldpilot/internal/identity"
	"github.com/yieldpilot/yieldpilot/internal/record"
	"github.com/yieldpilot/yieldpilot/internal/store"
)

// Service is the authority-guarded record store.
//
// Each operation is a single sequential step: verify the caller, then
// touch the store once. The service holds no state of its own; the
// store serializes concurrent calls against the same slot.
type Service struct {
	store    store.RecordStore
	verifier identity.Verifier
	logger   *slog.Logger
}

// ServiceOption allows configuration of service parameters.
type ServiceOption func(*Service)

// WithLogger sets the structured logger.
// Defaults to a discard logger, which tests rely on.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service over the given store and verifier.
func New(st store.RecordStore, verifier identity.Verifier, opts ...ServiceOption) *Service {
	s := &Service{
		store:    st,
		verifier: verifier,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create initializes a record in an empty slot.
//
// The verified caller becomes the record's authority, permanently. Both
// yield fields start at zero. Creating into an occupied slot fails with
// SLOT_OCCUPIED from the store; the record logic never sees it.
func (s *Service) Create(ctx context.Context, slotID string, call identity.CallContext) (*record.YieldRecord, error) {
	authority, err := s.verifier.Verify(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	rec := record.New(authority)
	if err := s.store.Create(ctx, slotID, rec); err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}

	s.logger.Info("record created",
		"slot", record.CanonicalSlotID(slotID),
		"authority", authority.String(),
	)

	return rec, nil
}

// UpdateYield overwrites the record's protocol selector and APY.
//
// The verified caller must equal the record's stored authority;
// otherwise the operation fails with UNAUTHORIZED and the stored record
// is left bit-for-bit unchanged. On success both fields are overwritten
// unconditionally - no validation, no diffing.
func (s *Service) UpdateYield(
	ctx context.Context,
	slotID string,
	call identity.CallContext,
	newProtocol uint8,
	newAPYBps uint16,
) (*record.YieldRecord, error) {
	caller, err := s.verifier.Verify(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("update yield: %w", err)
	}

	var updated *record.YieldRecord
	err = s.store.Mutate(ctx, slotID, func(r *record.YieldRecord) error {
		if err := r.ApplyUpdate(caller, newProtocol, newAPYBps); err != nil {
			return err
		}
		updated = r.Clone()
		return nil
	})
	if err != nil {
		s.logger.Warn("yield update rejected",
			"slot", record.CanonicalSlotID(slotID),
			"caller", caller.String(),
			"error", err,
		)
		return nil, fmt.Errorf("update yield: %w", err)
	}

	s.logger.Info("yield updated",
		"slot", record.CanonicalSlotID(slotID),
		"protocol", updated.CurrentProtocol,
		"apy_bps", updated.CurrentAPYBps,
	)

	return updated, nil
}

// Get returns the record in the slot. Read-only; no identity required.
func (s *Service) Get(ctx context.Context, slotID string) (*record.YieldRecord, error) {
	rec, err := s.store.Get(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	return rec, nil
}
