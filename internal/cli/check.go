package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/dpgen/internal/config"
	"github.com/example/dpgen/internal/wire"
)

// CheckCmd returns the check command
func CheckCmd() *cobra.Command {
	var (
		encoderBin   string
		forceVersion string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "check [config-file] [reference-json]",
		Short: "Verify a committed item document is up to date",
		Long: `Regenerate the item document for a config file and compare it byte for byte
with a committed reference. No images are generated.

When the reference differs it is overwritten with the fresh document and a
warning is printed, so the change can be reviewed with "git diff". Drift is a
diagnostic: the command still exits 0.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, referencePath := args[0], args[1]
			if err := config.CheckName(configPath); err != nil {
				return err
			}

			tools := config.ResolveTools(encoderBin, "")
			if err := tools.ValidateEncoder(); err != nil {
				return err
			}

			_, err := wire.PartitionAdapter().Check(context.Background(), configPath, referencePath, tools.Encoder, forceVersion, verbose)
			return err
		},
	}

	cmd.Flags().StringVarP(&encoderBin, "vfctrl-host-bin-path", "c", "", "Path to the vfctrl_json host app (default $"+config.EncoderEnv+" or PATH)")
	cmd.Flags().StringVarP(&forceVersion, "force-compatibility-version", "f", "", "Force a compatibility version instead of the host app's (format 1.2.3)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print host app commands and output")

	return cmd
}
