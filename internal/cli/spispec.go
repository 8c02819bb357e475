package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/dpgen/internal/wire"
)

// SpispecCmd returns the spispec command
func SpispecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spispec",
		Short: "Encode and inspect flash specification files",
	}

	cmd.AddCommand(spispecEncodeCmd())
	cmd.AddCommand(spispecDecodeCmd())

	return cmd
}

func spispecEncodeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "encode [spispec-file]",
		Short: "Encode a .spispec file into its binary form",
		Long: `Encode a flash specification text file into the binary layout read by the
firmware. By default the output replaces the .spispec extension with .bin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SpispecAdapter().Encode(context.Background(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output binary path")

	return cmd
}

func spispecDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [bin-file]",
		Short: "Print an encoded spispec binary as spispec text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SpispecAdapter().Decode(context.Background(), args[0])
		},
	}
}
