package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/dpgen/internal/cli"
	"github.com/example/dpgen/internal/db"
	"github.com/example/dpgen/internal/version"
)

func main() {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:     "dpgen",
		Short:   "dpgen - data partition generator for XMOS voice firmware",
		Version: version.String(),
		Long: `dpgen turns a data partition config into an item document and the factory
and upgrade flash images built from it, using the vfctrl_json and
data_partition_generator host apps.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if dbPath != "" {
				db.SetPath(dbPath)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Build history database (default $"+db.PathEnv+" or ~/.dpgen/dpgen.db)")

	rootCmd.AddCommand(cli.BuildCmd())
	rootCmd.AddCommand(cli.CheckCmd())
	rootCmd.AddCommand(cli.SpispecCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	err := rootCmd.Execute()
	_ = db.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}
