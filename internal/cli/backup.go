package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/safeprag/internal/wire"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export, restore, and wipe local data",
	Long:  "Serialize the full local store to a snapshot file and restore it. Restore is a trusted bulk overwrite.",
}

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a full snapshot to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := wire.BackupService().BackupAllData(context.Background())
		if err != nil {
			return fmt.Errorf("failed to assemble backup: %w", err)
		}

		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize backup: %w", err)
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("failed to write backup file: %w", err)
		}

		fmt.Printf("✓ Backup written to %s (%d sections)\n", args[0], len(snapshot))
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [file]",
	Short: "Restore a snapshot file into the local store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read backup file: %w", err)
		}

		var snapshot map[string]any
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return fmt.Errorf("backup file is not valid JSON: %w", err)
		}

		if err := wire.BackupService().RestoreBackup(context.Background(), snapshot); err != nil {
			return fmt.Errorf("failed to restore backup: %w", err)
		}

		fmt.Printf("✓ Restored %s\n", args[0])
		return nil
	},
}

var backupWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Erase all local data",
	Long:  "Removes orders, catalog, company profile, and operator identity. Irreversible without a snapshot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			return fmt.Errorf("refusing to wipe without --force\nHint: run 'safeprag backup export' first")
		}

		if err := wire.BackupService().CleanupSystemData(context.Background()); err != nil {
			return fmt.Errorf("failed to wipe data: %w", err)
		}
		fmt.Println("✓ Local data erased")
		return nil
	},
}

func init() {
	backupWipeCmd.Flags().Bool("force", false, "Confirm the irreversible wipe")

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupWipeCmd)
}

// BackupCmd returns the backup command
func BackupCmd() *cobra.Command {
	return backupCmd
}
