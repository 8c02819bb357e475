package cli

import (
	"context"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/dpgen/internal/adapters/cli"
	"github.com/example/dpgen/internal/config"
	"github.com/example/dpgen/internal/wire"
)

// BuildCmd returns the build command
func BuildCmd() *cobra.Command {
	var (
		outputJSON   string
		encoderBin   string
		generatorBin string
		forceVersion string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "build [config-file]",
		Short: "Generate factory and upgrade data partition images",
		Long: `Convert a config file listing control command logs (.txt) and keyword
detector boot logs (.bin) into an item document, encode the referenced spispec,
and run the data partition generator to produce a factory and an upgrade image.

The config file may be JSON or YAML. Paths inside it are relative to the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := args[0]
			if err := config.CheckName(configPath); err != nil {
				return err
			}

			tools := config.ResolveTools(encoderBin, generatorBin)
			if err := tools.Validate(); err != nil {
				return err
			}

			return wire.PartitionAdapter().Build(context.Background(), configPath, cliadapter.BuildOptions{
				DocumentPath:         outputJSON,
				CompatibilityVersion: forceVersion,
				EncoderPath:          tools.Encoder,
				ImageGeneratorPath:   tools.ImageGenerator,
				Verbose:              verbose,
			})
		},
	}

	cmd.Flags().StringVarP(&outputJSON, "output-json-file", "o", "", "Path and file name of the generated JSON file")
	cmd.Flags().StringVarP(&encoderBin, "vfctrl-host-bin-path", "c", "", "Path to the vfctrl_json host app (default $"+config.EncoderEnv+" or PATH)")
	cmd.Flags().StringVarP(&generatorBin, "dpgen-host-bin-path", "d", "", "Path to the data_partition_generator host app (default $"+config.ImageGeneratorEnv+" or PATH)")
	cmd.Flags().StringVarP(&forceVersion, "force-compatibility-version", "f", "", "Force a compatibility version instead of the host app's (format 1.2.3)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print host app commands and output")

	return cmd
}
