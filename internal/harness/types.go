package harness

// TraceEvent records one executed step and its observable effect.
type TraceEvent struct {
	// Seq is the 1-based position of the step in the scenario.
	Seq int `json:"seq"`

	// Op is the executed operation ("create" or "update").
	Op string `json:"op"`

	// Slot is the canonicalized slot ID the step targeted.
	Slot string `json:"slot"`

	// Signer names the invoking identity.
	Signer string `json:"signer"`

	// Outcome is "ok" or the error code the step failed with.
	Outcome string `json:"outcome"`

	// Record is the record state after the step, present whenever the
	// slot holds a record (also after rejected updates, which must show
	// the unchanged state).
	Record *RecordState `json:"record,omitempty"`
}

// RecordState is the serialized view of a record for traces.
type RecordState struct {
	Authority string `json:"authority"`
	Protocol  uint8  `json:"protocol"`
	APYBps    uint16 `json:"apy_bps"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every expect clause and final-state assertion matched.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
