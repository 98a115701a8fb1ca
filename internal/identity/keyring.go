package identity

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yieldpilot/yieldpilot/internal/record"
)

// Keyring is a YAML-backed Verifier mapping signer names to identities.
//
// The keyring file is the deployment's stand-in for the host
// environment's signature check: listing a signer there is what makes
// its identity trusted.
//
// File format:
//
//	signers:
//	  alice: a1a1a1... (64 hex chars)
//	  bob:   b0b0b0...
type Keyring struct {
	signers map[string]record.Authority
}

var _ Verifier = (*Keyring)(nil)

// keyringFile is the on-disk YAML shape.
type keyringFile struct {
	Signers map[string]string `yaml:"signers"`
}

// LoadKeyring reads and parses a keyring YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or holds an identity that is not 64 hex chars.
func LoadKeyring(path string) (*Keyring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyring file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "signer:" vs "signers:")
	var file keyringFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse keyring YAML: %w", err)
	}

	if len(file.Signers) == 0 {
		return nil, fmt.Errorf("invalid keyring: signers map is required and must be non-empty")
	}

	signers := make(map[string]record.Authority, len(file.Signers))
	for name, hexID := range file.Signers {
		a, err := record.AuthorityFromHex(hexID)
		if err != nil {
			return nil, fmt.Errorf("invalid keyring: signer %q: %w", name, err)
		}
		signers[name] = a
	}

	return &Keyring{signers: signers}, nil
}

// Verify implements Verifier.
func (k *Keyring) Verify(ctx context.Context, call CallContext) (record.Authority, error) {
	a, ok := k.signers[call.Signer]
	if !ok {
		return record.Authority{}, NewUnknownSignerError(call.Signer)
	}
	return a, nil
}

// Names returns the signer names in the keyring. Used by the CLI for
// diagnostics; order is not specified.
func (k *Keyring) Names() []string {
	names := make([]string, 0, len(k.signers))
	for name := range k.signers {
		names = append(names, name)
	}
	return names
}
