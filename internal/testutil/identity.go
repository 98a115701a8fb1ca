package testutil

import (
	"strings"

	"github.com/yieldpilot/yieldpilot/internal/record"
)

// AuthorityFromSeed builds a deterministic authority whose 32 bytes all
// equal seed.
//
// The same seed always yields the same identity, so tests and golden
// fixtures can name authorities by a single byte ("alice is 0xA1")
// and still compare full identifiers byte for byte.
func AuthorityFromSeed(seed byte) record.Authority {
	var a record.Authority
	for i := range a {
		a[i] = seed
	}
	return a
}

// AuthorityHexFromSeed returns the 64-char hex form of the seeded
// authority, for keyring files and scenario YAML.
func AuthorityHexFromSeed(seed byte) string {
	return AuthorityFromSeed(seed).String()
}

// KeyringYAML renders a keyring file body for the given signer seeds.
// Emission order is unspecified; keyring maps are order-insensitive.
func KeyringYAML(signers map[string]byte) string {
	var b strings.Builder
	b.WriteString("signers:\n")
	for name, seed := range signers {
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(AuthorityHexFromSeed(seed))
		b.WriteString("\n")
	}
	return b.String()
}
