// Package harness provides a conformance testing framework for the
// yield record store.
//
// Scenarios are YAML files describing a sequence of create/update steps
// with expected outcomes, plus assertions on the final record state.
// Each scenario runs against a fresh in-memory store with a static
// verifier built from the scenario's inline keyring, so runs are fully
// deterministic and need no real persistence backend.
//
// The trace of every run can be compared against golden files (see
// golden.go), pinning the observable behavior of the store byte for
// byte across changes.
package harness
