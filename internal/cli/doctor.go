package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/safeprag/internal/config"
	"github.com/example/safeprag/internal/db"
	"github.com/example/safeprag/internal/wire"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the safeprag environment",
		Long: `Environment health check for safeprag.

Validates:
- App directory (~/.safeprag)
- Database file and migrations
- Operator identity
- Company profile
- Storage usage against the configured limits

Examples:
  safeprag doctor           # Run full health check
  safeprag doctor --quiet   # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkAppDir(),
				checkDatabase(),
				checkOperator(),
				checkCompany(),
				checkStorage(),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						fmt.Printf("%s: %s\n", r.Name, r.Details)
					}
				}
			}

			if hasErrors {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "Exit code only, no output")
	return cmd
}

func checkAppDir() CheckResult {
	if _, err := config.AppDir(); err != nil {
		return CheckResult{Name: "App directory", Status: "✗", Details: err.Error()}
	}
	return CheckResult{Name: "App directory", Status: "✓"}
}

func checkDatabase() CheckResult {
	path, err := db.GetDBPath()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: err.Error()}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{Name: "Database", Status: "⚠", Details: "not created yet, run 'safeprag init'"}
	}
	if _, err := db.GetDB(); err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: err.Error()}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}

func checkOperator() CheckResult {
	op, err := wire.OperatorRepository().Get(context.Background())
	if err != nil {
		return CheckResult{Name: "Operator", Status: "✗", Details: err.Error()}
	}
	if op == nil || op.Name == "" {
		return CheckResult{Name: "Operator", Status: "⚠", Details: "no identity configured, orders cannot be started"}
	}
	return CheckResult{Name: "Operator", Status: "✓"}
}

func checkCompany() CheckResult {
	company, err := wire.CatalogRepository().GetCompany(context.Background())
	if err != nil {
		return CheckResult{Name: "Company profile", Status: "✗", Details: err.Error()}
	}
	if company == nil {
		return CheckResult{Name: "Company profile", Status: "⚠", Details: "no company profile, documents will render without a header"}
	}
	return CheckResult{Name: "Company profile", Status: "✓"}
}

func checkStorage() CheckResult {
	usage, err := wire.MaintenanceService().CheckStorageUsage(context.Background())
	if err != nil {
		return CheckResult{Name: "Storage", Status: "✗", Details: err.Error()}
	}
	cfg := wire.Config()
	if usage.TotalMB > cfg.HardLimitMB {
		return CheckResult{Name: "Storage", Status: "✗", Details: fmt.Sprintf("%.2f MB exceeds the hard limit, run 'safeprag storage prune'", usage.TotalMB)}
	}
	if usage.TotalMB > cfg.SoftLimitMB {
		return CheckResult{Name: "Storage", Status: "⚠", Details: fmt.Sprintf("%.2f MB exceeds the soft limit", usage.TotalMB)}
	}
	return CheckResult{Name: "Storage", Status: "✓"}
}
