package cli

import (
	"github.com/spf13/cobra"

	"github.com/yieldpilot/yieldpilot/internal/store"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <slot-id>",
		Short: "Print the record in a slot",
		Long: `Print the record in a slot. Read-only; no signer required.

Examples:
  yieldpilot show vault-main
  yieldpilot show vault-main --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, slotID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	// Read path: no signer, no keyring - open the store directly.
	st, err := store.Open(opts.DBPath)
	if err != nil {
		wrapped := WrapExitError(ExitCommandError, "failed to open database", err)
		formatter.Error(ErrCodeGeneric, wrapped.Error(), nil)
		return wrapped
	}
	defer st.Close()

	rec, err := st.Get(cmd.Context(), slotID)
	if err != nil {
		formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitFailure, "show failed")
	}

	return formatter.Success(newRecordView(slotID, rec))
}
