package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/safeprag/internal/wire"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect and prune the local store",
}

var storageUsageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show per-key storage usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		usage, err := wire.MaintenanceService().CheckStorageUsage(context.Background())
		if err != nil {
			return fmt.Errorf("failed to check storage usage: %w", err)
		}

		cfg := wire.Config()
		for _, k := range usage.Keys {
			fmt.Printf("%-32s %8.3f MB  %d item(s)\n", k.Key, k.SizeMB, k.Items)
		}
		fmt.Println()

		total := fmt.Sprintf("%.3f MB", usage.TotalMB)
		switch {
		case usage.TotalMB > cfg.HardLimitMB:
			total = color.New(color.FgRed).Sprintf("%.3f MB (above hard limit)", usage.TotalMB)
		case usage.TotalMB > cfg.SoftLimitMB:
			total = color.New(color.FgYellow).Sprintf("%.3f MB (above soft limit)", usage.TotalMB)
		}
		fmt.Printf("Total: %s\n", total)
		return nil
	},
}

var storagePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Prune old orders and sweep oversized storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		removed, err := wire.MaintenanceService().CleanupServiceOrders(ctx)
		if err != nil {
			return fmt.Errorf("failed to prune orders: %w", err)
		}
		if err := wire.MaintenanceService().CleanupStorageIfNeeded(ctx); err != nil {
			return fmt.Errorf("failed to sweep storage: %w", err)
		}

		fmt.Printf("✓ Pruned %d old order(s)\n", removed)
		return nil
	},
}

func init() {
	storageCmd.AddCommand(storageUsageCmd)
	storageCmd.AddCommand(storagePruneCmd)
}

// StorageCmd returns the storage command
func StorageCmd() *cobra.Command {
	return storageCmd
}
