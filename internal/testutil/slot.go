package testutil

// FixedSlotGenerator returns the same slot ID every time.
//
// This enables deterministic CLI tests: the same invocation with the
// same FixedSlotGenerator produces byte-identical output, where the
// production generator mints a fresh UUID per call.
//
// Thread-safety: FixedSlotGenerator is stateless and safe for concurrent use.
type FixedSlotGenerator struct {
	id string
}

// NewFixedSlotGenerator creates a generator that always returns id.
// If id is empty, Generate() returns "test-slot-default".
func NewFixedSlotGenerator(id string) *FixedSlotGenerator {
	if id == "" {
		id = "test-slot-default"
	}
	return &FixedSlotGenerator{id: id}
}

// Generate returns the fixed slot ID.
//
// Implements cli.SlotIDGenerator.
func (g *FixedSlotGenerator) Generate() string {
	return g.id
}
