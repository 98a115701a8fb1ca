package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldpilot/yieldpilot/internal/testutil"
)

func TestInit_CreatesRecord(t *testing.T) {
	args := append([]string{"init", "vault-main", "--signer", "alice"}, env(t)...)
	out, _, err := execute(t, args...)

	require.NoError(t, err)
	assert.Contains(t, out, "slot:      vault-main")
	assert.Contains(t, out, "authority: "+testutil.AuthorityHexFromSeed(0xA1))
	assert.Contains(t, out, "protocol:  0")
	assert.Contains(t, out, "apy_bps:   0")
}

func TestInit_JSONOutput(t *testing.T) {
	args := append([]string{"init", "vault-main", "--signer", "alice", "--format", "json"}, env(t)...)
	out, _, err := execute(t, args...)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "vault-main", data["slot_id"])
	assert.Equal(t, testutil.AuthorityHexFromSeed(0xA1), data["authority"])
	assert.Equal(t, float64(0), data["protocol"])
	assert.Equal(t, float64(0), data["apy_bps"])
}

func TestInit_GeneratedSlotID(t *testing.T) {
	db, kr := setupEnv(t)

	rootOpts := &RootOptions{Format: "text", DBPath: db, KeyringPath: kr}
	cmd := NewInitCommand(rootOpts, testutil.NewFixedSlotGenerator("slot-fixed"))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--signer", "alice"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "slot:      slot-fixed")
}

func TestInit_OccupiedSlot(t *testing.T) {
	db, kr := setupEnv(t)
	shared := []string{"--db", db, "--keyring", kr}

	_, _, err := execute(t, append([]string{"init", "vault-main", "--signer", "alice"}, shared...)...)
	require.NoError(t, err)

	// Same slot again, even by the original creator, is rejected.
	out, _, err := execute(t, append([]string{"init", "vault-main", "--signer", "alice"}, shared...)...)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "SLOT_OCCUPIED")
}

func TestInit_UnknownSigner(t *testing.T) {
	args := append([]string{"init", "vault-main", "--signer", "mallory"}, env(t)...)
	out, _, err := execute(t, args...)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "UNKNOWN_SIGNER")
}

func TestInit_MissingKeyring(t *testing.T) {
	dir := t.TempDir()
	args := []string{
		"init", "vault-main", "--signer", "alice",
		"--db", filepath.Join(dir, "test.db"),
		"--keyring", filepath.Join(dir, "missing.yaml"),
	}
	_, _, err := execute(t, args...)

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestInit_RequiresSigner(t *testing.T) {
	args := append([]string{"init", "vault-main"}, env(t)...)
	_, _, err := execute(t, args...)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "signer")
}
