package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldpilot/yieldpilot/internal/testutil"
)

func TestShow_ExistingRecord(t *testing.T) {
	db, kr := setupEnv(t)
	shared := []string{"--db", db, "--keyring", kr}

	_, _, err := execute(t, append([]string{"init", "vault-main", "--signer", "bob"}, shared...)...)
	require.NoError(t, err)

	// show needs the database but not the keyring.
	out, _, err := execute(t, "show", "vault-main", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "slot:      vault-main")
	assert.Contains(t, out, "authority: "+testutil.AuthorityHexFromSeed(0xB0))
}

func TestShow_JSONOutput(t *testing.T) {
	db, kr := setupEnv(t)
	shared := []string{"--db", db, "--keyring", kr}

	_, _, err := execute(t, append([]string{"init", "vault-main", "--signer", "alice"}, shared...)...)
	require.NoError(t, err)

	out, _, err := execute(t, "show", "vault-main", "--db", db, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestShow_MissingSlot(t *testing.T) {
	db, _ := setupEnv(t)

	out, _, err := execute(t, "show", "no-such-slot", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "RECORD_NOT_FOUND")
}

func TestShow_EquivalentSlotSpellings(t *testing.T) {
	db, kr := setupEnv(t)
	shared := []string{"--db", db, "--keyring", kr}

	// Decomposed spelling on create, precomposed on read.
	_, _, err := execute(t, append([]string{"init", "cafe\u0301-yield", "--signer", "alice"}, shared...)...)
	require.NoError(t, err)

	out, _, err := execute(t, "show", "caf\u00e9-yield", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "authority: "+testutil.AuthorityHexFromSeed(0xA1))
}
