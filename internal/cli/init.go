package cli

import (
	"github.com/spf13/cobra"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Signer string
}

// NewInitCommand creates the init command.
// slots mints a slot ID when the positional argument is omitted.
func NewInitCommand(rootOpts *RootOptions, slots SlotIDGenerator) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init [slot-id]",
		Short: "Create a yield record owned by the signer",
		Long: `Create a yield record in an empty slot.

The signer becomes the record's authority, permanently. The protocol
selector and APY start at zero. Creating into an occupied slot fails.

If no slot ID is given, a fresh UUID is used.

Examples:
  yieldpilot init vault-main --signer alice
  yieldpilot init --signer alice`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID := ""
			if len(args) == 1 {
				slotID = args[0]
			}
			if slotID == "" {
				slotID = slots.Generate()
			}
			return runInit(opts, slotID, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Signer, "signer", "", "keyring name of the creating signer")
	cmd.MarkFlagRequired("signer")

	return cmd
}

func runInit(opts *InitOptions, slotID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	svc, closeStore, err := openService(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return err
	}
	defer closeStore()

	formatter.VerboseLog("creating record in slot %s as %s", slotID, opts.Signer)

	rec, err := svc.Create(cmd.Context(), slotID, callContext(opts.Signer))
	if err != nil {
		formatter.Error(errorCode(err), err.Error(), nil)
		return NewExitError(ExitFailure, "init failed")
	}

	return formatter.Success(newRecordView(slotID, rec))
}
