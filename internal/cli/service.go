package cli

import (
	"io"
	"log/slog"

	"github.com/yieldpilot/yieldpilot/internal/identity"
	"github.com/yieldpilot/yieldpilot/internal/pilot"
	"github.com/yieldpilot/yieldpilot/internal/store"
)

// openService loads the keyring, opens the record database, and wires
// the service for a single command run.
// The returned closer must be called when the command finishes.
func openService(opts *RootOptions, errOut io.Writer) (*pilot.Service, func() error, error) {
	keyring, err := identity.LoadKeyring(opts.KeyringPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load keyring", err)
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	var svcOpts []pilot.ServiceOption
	if opts.Verbose {
		// Structured operation log on stderr, clear of JSON output.
		svcOpts = append(svcOpts, pilot.WithLogger(slog.New(slog.NewTextHandler(errOut, nil))))
	}

	return pilot.New(st, keyring, svcOpts...), st.Close, nil
}

// callContext wraps a signer name as the host-attested call context.
func callContext(signer string) identity.CallContext {
	return identity.CallContext{Signer: signer}
}
