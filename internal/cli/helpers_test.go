package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yieldpilot/yieldpilot/internal/testutil"
)

// execute runs the root command with args and returns captured output.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// setupEnv creates a temp keyring (alice, bob) and returns flag values
// for a fresh database next to it.
func setupEnv(t *testing.T) (dbPath, keyringPath string) {
	t.Helper()

	dir := t.TempDir()
	dbPath = filepath.Join(dir, "test.db")
	keyringPath = filepath.Join(dir, "keyring.yaml")

	content := testutil.KeyringYAML(map[string]byte{"alice": 0xA1, "bob": 0xB0})
	require.NoError(t, os.WriteFile(keyringPath, []byte(content), 0o600))

	return dbPath, keyringPath
}

// env expands setupEnv into the shared flag arguments.
func env(t *testing.T) []string {
	db, kr := setupEnv(t)
	return []string{"--db", db, "--keyring", kr}
}
