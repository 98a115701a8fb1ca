package cli

import (
	"github.com/spf13/cobra"
)

// UpdateOptions holds flags for the update command.
type UpdateOptions struct {
	*RootOptions
	Signer   string
	Protocol uint8
	APYBps   uint16
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update <slot-id>",
		Short: "Overwrite a record's protocol and APY",
		Long: `Overwrite the protocol selector and APY of an existing record.

The signer must be the record's authority; any other signer is rejected
with UNAUTHORIZED and the record is left unchanged. The new values are
written as supplied - no bounds checks beyond the u8/u16 ranges.

Examples:
  yieldpilot update vault-main --signer alice --protocol 3 --apy-bps 550`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Signer, "signer", "", "keyring name of the invoking signer")
	cmd.Flags().Uint8Var(&opts.Protocol, "protocol", 0, "new protocol selector (0-255)")
	cmd.Flags().Uint16Var(&opts.APYBps, "apy-bps", 0, "new yield rate in basis points (0-65535)")
	cmd.MarkFlagRequired("signer")
	cmd.MarkFlagRequired("protocol")
	cmd.MarkFlagRequired("apy-bps")

	return cmd
}

func runUpdate(opts *UpdateOptions, slotID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	svc, closeStore, err := openService(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return err
	}
	defer closeStore()

	formatter.VerboseLog("updating slot %s as %s: protocol=%d apy_bps=%d",
		slotID, opts.Signer, opts.Protocol, opts.APYBps)

	rec, err := svc.UpdateYield(cmd.Context(), slotID, callContext(opts.Signer), opts.Protocol, opts.APYBps)
	if err != nil {
		formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitFailure, "update failed")
	}

	return formatter.Success(newRecordView(slotID, rec))
}
