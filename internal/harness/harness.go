package harness

import (
	"context"
	"fmt"

	"github.com/yieldpilot/yieldpilot/internal/identity"
	"github.com/yieldpilot/yieldpilot/internal/pilot"
	"github.com/yieldpilot/yieldpilot/internal/record"
	"github.com/yieldpilot/yieldpilot/internal/store"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory store for isolation,
// with a static verifier built from the scenario's keyring. Execution
// is strictly sequential; the trace is deterministic for a given
// scenario.
func Run(scenario *Scenario) (*Result, error) {
	verifier := identity.Static{}
	for name, hexID := range scenario.Keyring {
		a, err := record.AuthorityFromHex(hexID)
		if err != nil {
			return nil, fmt.Errorf("keyring signer %q: %w", name, err)
		}
		verifier[name] = a
	}

	st := store.NewMemStore()
	defer st.Close()

	svc := pilot.New(st, verifier)
	ctx := context.Background()
	result := NewResult()

	for i, step := range scenario.Steps {
		call := identity.CallContext{Signer: step.Signer}

		var opErr error
		switch step.Op {
		case OpCreate:
			_, opErr = svc.Create(ctx, step.Slot, call)
		case OpUpdate:
			_, opErr = svc.UpdateYield(ctx, step.Slot, call, step.Protocol, step.APYBps)
		default:
			return nil, fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}

		outcome := outcomeCode(opErr)

		event := TraceEvent{
			Seq:     i + 1,
			Op:      step.Op,
			Slot:    record.CanonicalSlotID(step.Slot),
			Signer:  step.Signer,
			Outcome: outcome,
		}
		// Snapshot whatever the slot holds, including after rejected
		// updates - the unchanged state is part of the contract.
		if rec, err := st.Get(ctx, step.Slot); err == nil {
			event.Record = &RecordState{
				Authority: rec.Authority.String(),
				Protocol:  rec.CurrentProtocol,
				APYBps:    rec.CurrentAPYBps,
			}
		}
		result.Trace = append(result.Trace, event)

		expect := step.Expect
		if expect == "" {
			expect = OutcomeOK
		}
		if outcome != expect {
			result.AddError(fmt.Sprintf("steps[%d] (%s %s): outcome %s, want %s", i, step.Op, step.Slot, outcome, expect))
		}
	}

	checkFinalState(ctx, st, verifier, scenario, result)

	return result, nil
}

// checkFinalState validates the scenario's final-state assertions.
func checkFinalState(
	ctx context.Context,
	st store.RecordStore,
	verifier identity.Static,
	scenario *Scenario,
	result *Result,
) {
	for i, final := range scenario.Final {
		rec, err := st.Get(ctx, final.Slot)
		if err != nil {
			result.AddError(fmt.Sprintf("final[%d]: slot %s: %v", i, final.Slot, err))
			continue
		}

		want := verifier[final.Authority]
		if !rec.Authority.Equal(want) {
			result.AddError(fmt.Sprintf("final[%d]: slot %s: authority %s, want %s (%s)",
				i, final.Slot, rec.Authority, want, final.Authority))
		}
		if rec.CurrentProtocol != final.Protocol {
			result.AddError(fmt.Sprintf("final[%d]: slot %s: protocol %d, want %d",
				i, final.Slot, rec.CurrentProtocol, final.Protocol))
		}
		if rec.CurrentAPYBps != final.APYBps {
			result.AddError(fmt.Sprintf("final[%d]: slot %s: apy_bps %d, want %d",
				i, final.Slot, rec.CurrentAPYBps, final.APYBps))
		}
	}
}

// outcomeCode maps an operation error to its trace outcome.
func outcomeCode(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case record.IsUnauthorized(err):
		return "UNAUTHORIZED"
	case store.IsSlotOccupied(err):
		return "SLOT_OCCUPIED"
	case store.IsRecordNotFound(err):
		return "RECORD_NOT_FOUND"
	case identity.IsUnknownSigner(err):
		return "UNKNOWN_SIGNER"
	default:
		return "ERROR"
	}
}
