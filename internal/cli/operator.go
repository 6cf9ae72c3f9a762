package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/wire"
)

var operatorCmd = &cobra.Command{
	Use:   "operator",
	Short: "Manage the operator identity",
	Long:  "Set and inspect the operator identity stamped on every service order",
}

var operatorSetCmd = &cobra.Command{
	Use:   "set [name]",
	Short: "Set the operator identity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		role, _ := cmd.Flags().GetString("role")
		contact, _ := cmd.Flags().GetString("contact")

		if role != models.RoleControlador && role != models.RoleTecnico {
			return fmt.Errorf("invalid role %q (want %s or %s)", role, models.RoleControlador, models.RoleTecnico)
		}

		op := &models.Operator{Name: args[0], Role: role, Contact: contact}
		if err := wire.OperatorRepository().Save(ctx, op); err != nil {
			return fmt.Errorf("failed to save operator identity: %w", err)
		}

		fmt.Printf("✓ Operator set: %s (%s)\n", op.Name, op.Role)
		return nil
	},
}

var operatorShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured operator identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		op, err := wire.OperatorRepository().Get(context.Background())
		if err != nil {
			return fmt.Errorf("failed to read operator identity: %w", err)
		}
		if op == nil {
			fmt.Println("No operator configured. Set one with: safeprag operator set")
			return nil
		}

		fmt.Printf("Name: %s\n", op.Name)
		if op.Role != "" {
			fmt.Printf("Role: %s\n", op.Role)
		}
		if op.Contact != "" {
			fmt.Printf("Contact: %s\n", op.Contact)
		}
		return nil
	},
}

func init() {
	operatorSetCmd.Flags().String("role", models.RoleControlador, "Operator role (controlador or tecnico)")
	operatorSetCmd.Flags().String("contact", "", "Contact phone or email")

	operatorCmd.AddCommand(operatorSetCmd)
	operatorCmd.AddCommand(operatorShowCmd)
}

// OperatorCmd returns the operator command
func OperatorCmd() *cobra.Command {
	return operatorCmd
}
