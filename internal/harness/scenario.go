package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios exercise the record store through a sequence of steps and
// assert on the resulting trace and final record state.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Keyring maps signer names to 64-hex-char identities.
	// It seeds the static verifier for the run.
	Keyring map[string]string `yaml:"keyring"`

	// Steps contains the operations to execute, in order.
	Steps []Step `yaml:"steps"`

	// Final asserts on record state after all steps ran.
	Final []FinalState `yaml:"final,omitempty"`
}

// Step is a single store operation with an expected outcome.
type Step struct {
	// Op is the operation: "create" or "update".
	Op string `yaml:"op"`

	// Slot is the slot ID the operation targets.
	Slot string `yaml:"slot"`

	// Signer names the identity invoking the operation.
	Signer string `yaml:"signer"`

	// Protocol is the new protocol selector (update only).
	Protocol uint8 `yaml:"protocol,omitempty"`

	// APYBps is the new yield rate in basis points (update only).
	APYBps uint16 `yaml:"apy_bps,omitempty"`

	// Expect is the expected outcome: "ok" or an error code
	// (UNAUTHORIZED, SLOT_OCCUPIED, RECORD_NOT_FOUND, UNKNOWN_SIGNER).
	// Empty defaults to "ok".
	Expect string `yaml:"expect,omitempty"`
}

// FinalState asserts the record in a slot after the run.
type FinalState struct {
	// Slot is the slot ID to read.
	Slot string `yaml:"slot"`

	// Authority names the expected owner (a keyring signer name).
	Authority string `yaml:"authority"`

	// Protocol is the expected protocol selector.
	Protocol uint8 `yaml:"protocol"`

	// APYBps is the expected yield rate in basis points.
	APYBps uint16 `yaml:"apy_bps"`
}

// Step operation constants.
const (
	OpCreate = "create"
	OpUpdate = "update"
)

// OutcomeOK marks a step that completed without error.
const OutcomeOK = "ok"

// validExpects lists the accepted expect values.
var validExpects = map[string]bool{
	OutcomeOK:          true,
	"UNAUTHORIZED":     true,
	"SLOT_OCCUPIED":    true,
	"RECORD_NOT_FOUND": true,
	"UNKNOWN_SIGNER":   true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "step:" vs "steps:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Keyring) == 0 {
		return fmt.Errorf("keyring is required and must be non-empty")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, final := range s.Final {
		if final.Slot == "" {
			return fmt.Errorf("final[%d]: slot is required", i)
		}
		if final.Authority == "" {
			return fmt.Errorf("final[%d]: authority is required", i)
		}
		if _, ok := s.Keyring[final.Authority]; !ok {
			return fmt.Errorf("final[%d]: authority %q not in keyring", i, final.Authority)
		}
	}

	return nil
}

// validateStep validates a single step.
func validateStep(index int, step *Step) error {
	switch step.Op {
	case OpCreate, OpUpdate:
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	if step.Slot == "" {
		return fmt.Errorf("steps[%d]: slot is required", index)
	}
	if step.Signer == "" {
		return fmt.Errorf("steps[%d]: signer is required", index)
	}

	if step.Expect != "" && !validExpects[step.Expect] {
		return fmt.Errorf("steps[%d]: unknown expect %q", index, step.Expect)
	}

	if step.Op == OpCreate && (step.Protocol != 0 || step.APYBps != 0) {
		return fmt.Errorf("steps[%d]: create takes no protocol/apy_bps values", index)
	}

	return nil
}
