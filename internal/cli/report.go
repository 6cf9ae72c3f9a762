package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/safeprag/internal/ports/primary"
	"github.com/example/safeprag/internal/wire"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate service documents and certificates",
	Long:  "Render service-order documents and certificates for finished orders. Generation never alters order state.",
}

var reportDocumentCmd = &cobra.Command{
	Use:   "document [order-id]",
	Short: "Generate the service-order document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := wire.ReportService().GenerateOrderDocument(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to generate document: %w", err)
		}
		fmt.Printf("✓ Document for order %s: %s\n", doc.OrderNumber, doc.Artifact)
		return nil
	},
}

var reportCertificateCmd = &cobra.Command{
	Use:   "certificate [order-id]",
	Short: "Generate the service certificate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		execution, _ := cmd.Flags().GetString("execution-date")
		validity, _ := cmd.Flags().GetInt("validity")
		methods, _ := cmd.Flags().GetStringSlice("method")
		pests, _ := cmd.Flags().GetStringSlice("pest")

		doc, err := wire.ReportService().GenerateCertificate(context.Background(), args[0], primary.CertificateRequest{
			ExecutionDate: execution,
			ValidityDays:  validity,
			Methods:       methods,
			TargetPests:   pests,
		})
		if err != nil {
			return fmt.Errorf("failed to generate certificate: %w", err)
		}
		fmt.Printf("✓ Certificate for order %s: %s\n", doc.OrderNumber, doc.Artifact)
		return nil
	},
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := wire.ReportService().ListDocuments(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		if len(docs) == 0 {
			fmt.Println("No documents found.")
			return nil
		}

		fmt.Printf("Found %d document(s):\n\n", len(docs))
		for _, d := range docs {
			fmt.Printf("📄 Order %s: %s\n", d.OrderNumber, d.ClientName)
			fmt.Printf("   Created: %s\n", d.CreatedAt)
			fmt.Printf("   Artifact: %s\n", d.Artifact)
		}
		return nil
	},
}

func init() {
	reportCertificateCmd.Flags().String("execution-date", "", "Execution date (defaults to the order date)")
	reportCertificateCmd.Flags().Int("validity", 0, "Validity in days (defaults to the configured value)")
	reportCertificateCmd.Flags().StringSlice("method", nil, "Applied method (repeatable)")
	reportCertificateCmd.Flags().StringSlice("pest", nil, "Target pest (repeatable)")

	reportCmd.AddCommand(reportDocumentCmd)
	reportCmd.AddCommand(reportCertificateCmd)
	reportCmd.AddCommand(reportListCmd)
}

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	return reportCmd
}
