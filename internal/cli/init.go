package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/safeprag/internal/config"
	"github.com/example/safeprag/internal/db"
)

// InitCmd returns the init command that prepares the local
// environment: app directory, database, and default config.
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the safeprag environment",
		Long: `Creates ~/.safeprag, opens the database (running any pending
migrations), and writes a default config.json if none exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			appDir, err := config.AppDir()
			if err != nil {
				return err
			}

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			configPath := filepath.Join(appDir, "config.json")
			if _, err := os.Stat(configPath); os.IsNotExist(err) {
				if err := config.SaveConfig(home, config.Defaults()); err != nil {
					return err
				}
				fmt.Printf("✓ Wrote default config to %s\n", configPath)
			}

			dbPath, _ := db.GetDBPath()
			fmt.Printf("✓ Environment ready at %s\n", appDir)
			fmt.Printf("  Database: %s\n", dbPath)
			fmt.Println("\nNext: set the operator identity with 'safeprag operator set <name>'")
			return nil
		},
	}
}
