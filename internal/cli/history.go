package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/dpgen/internal/ports/primary"
	"github.com/example/dpgen/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously generated data partitions",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	var filters primary.BuildFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded builds, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.HistoryAdapter().List(context.Background(), filters)
		},
	}

	cmd.Flags().StringVar(&filters.ConfigPath, "config", "", "Filter by absolute config path")
	cmd.Flags().StringVar(&filters.HardwareBuild, "hardware-build", "", "Filter by hardware build")
	cmd.Flags().IntVarP(&filters.Limit, "limit", "n", 20, "Maximum number of builds to list (0 for all)")

	return cmd
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [build-id]",
		Short: "Show details of a recorded build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.HistoryAdapter().Show(context.Background(), args[0])
		},
	}
}
