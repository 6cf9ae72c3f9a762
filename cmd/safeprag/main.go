package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/safeprag/internal/cli"
	"github.com/example/safeprag/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "safeprag",
		Short:   "SafePrag - pest-control field service manager",
		Version: version.String(),
		Long: `SafePrag manages pest-control field service: schedules, service
orders, device inspections, documents, and local data retention.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.OperatorCmd())
	rootCmd.AddCommand(cli.CatalogCmd())
	rootCmd.AddCommand(cli.ScheduleCmd())
	rootCmd.AddCommand(cli.OrderCmd())
	rootCmd.AddCommand(cli.DeviceCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.StorageCmd())
	rootCmd.AddCommand(cli.BackupCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
