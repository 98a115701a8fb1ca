package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAuthorityHex = "a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1"

// writeScenario writes scenario YAML into a temp dir and returns its path.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: minimal
description: smallest valid scenario
keyring:
  alice: `+testAuthorityHex+`
steps:
  - op: create
    slot: vault-main
    signer: alice
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "minimal", s.Name)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, OpCreate, s.Steps[0].Op)
	assert.Empty(t, s.Steps[0].Expect, "expect defaults at run time, not load time")
}

func TestLoadScenario_ShippedFixturesAreValid(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSuffix(filepath.Base(path), ".yaml"), s.Name,
				"scenario name must match file name for golden lookup")
		})
	}
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing file content",
			content: "",
			wantErr: "invalid scenario",
		},
		{
			name: "unknown field (typo)",
			content: `
name: typo
description: d
keyring:
  alice: ` + testAuthorityHex + `
step:
  - op: create
`,
			wantErr: "parse YAML",
		},
		{
			name: "missing keyring",
			content: `
name: no-keyring
description: d
steps:
  - op: create
    slot: s
    signer: alice
`,
			wantErr: "keyring is required",
		},
		{
			name: "unknown op",
			content: `
name: bad-op
description: d
keyring:
  alice: ` + testAuthorityHex + `
steps:
  - op: destroy
    slot: s
    signer: alice
`,
			wantErr: `unknown op "destroy"`,
		},
		{
			name: "unknown expect",
			content: `
name: bad-expect
description: d
keyring:
  alice: ` + testAuthorityHex + `
steps:
  - op: create
    slot: s
    signer: alice
    expect: MAYBE
`,
			wantErr: `unknown expect "MAYBE"`,
		},
		{
			name: "create with values",
			content: `
name: create-values
description: d
keyring:
  alice: ` + testAuthorityHex + `
steps:
  - op: create
    slot: s
    signer: alice
    protocol: 1
`,
			wantErr: "create takes no protocol",
		},
		{
			name: "final authority not in keyring",
			content: `
name: bad-final
description: d
keyring:
  alice: ` + testAuthorityHex + `
steps:
  - op: create
    slot: s
    signer: alice
final:
  - slot: s
    authority: bob
`,
			wantErr: `authority "bob" not in keyring`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "no-such.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario file")
}
