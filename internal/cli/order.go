package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/wire"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage service orders",
	Long:  "Start, finish, approve, and inspect service orders, the auditable records of visits performed",
}

var orderStartCmd = &cobra.Command{
	Use:   "start [schedule-id]",
	Short: "Open a service order for a schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		sched, err := wire.ScheduleService().GetSchedule(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to read schedule: %w", err)
		}
		if sched == nil {
			return fmt.Errorf("schedule %s not found", args[0])
		}

		o, err := wire.OrderService().CreateServiceOrder(ctx, sched)
		if err != nil {
			return fmt.Errorf("failed to start service order: %w", err)
		}
		if err := wire.OrderService().UpdateScheduleStatus(ctx, sched.ID, models.ScheduleStatusInProgress); err != nil {
			return fmt.Errorf("order started but schedule update failed: %w", err)
		}

		fmt.Printf("✓ Started order %s for %s\n", o.ID, o.ClientName)
		if o.ServiceType != "" {
			fmt.Printf("  Service: %s\n", o.ServiceType)
		}
		fmt.Printf("  Operator: %s\n", o.ControladorName)
		return nil
	},
}

var orderFinishCmd = &cobra.Command{
	Use:   "finish [order-id]",
	Short: "Complete an in-progress order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		treatment, _ := cmd.Flags().GetString("treatment")

		if treatment != "" {
			o, err := wire.OrderService().GetAllServiceOrders(ctx)
			if err != nil {
				return fmt.Errorf("failed to read orders: %w", err)
			}
			for _, existing := range o {
				if existing.ID == args[0] {
					existing.Treatment = treatment
					if err := wire.OrderService().SaveServiceOrder(ctx, existing); err != nil {
						return fmt.Errorf("failed to record treatment: %w", err)
					}
					break
				}
			}
		}

		finished, err := wire.OrderService().FinishServiceOrder(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to finish order: %w", err)
		}

		fmt.Printf("✓ Finished order %s at %s\n", finished.ID, finished.EndTime)
		return nil
	},
}

var orderFinishAllCmd = &cobra.Command{
	Use:   "finish-all",
	Short: "Bulk-complete every in-progress order",
	Long:  "Administrative recovery: completes all in-progress orders and sweeps today's pending schedules whose order is now completed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.OrderService().FinishAllActiveServiceOrders(context.Background()); err != nil {
			return fmt.Errorf("failed to finish active orders: %w", err)
		}
		fmt.Println("✓ All active orders completed")
		return nil
	},
}

var orderApproveCmd = &cobra.Command{
	Use:   "approve [order-id]",
	Short: "Approve a service order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := wire.OrderService().ApproveServiceOrder(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to approve order: %w", err)
		}
		fmt.Printf("✓ Approved order %s\n", o.ID)
		return nil
	},
}

var orderNoServiceCmd = &cobra.Command{
	Use:   "no-service [schedule-id]",
	Short: "Record that a scheduled visit could not be performed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		reason, _ := cmd.Flags().GetString("reason")
		if reason == "" {
			return fmt.Errorf("a reason is required\nHint: use --reason")
		}

		sched, err := wire.ScheduleService().GetSchedule(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to read schedule: %w", err)
		}
		if sched == nil {
			return fmt.Errorf("schedule %s not found", args[0])
		}

		o, err := wire.OrderService().RegisterNoService(ctx, sched, reason)
		if err != nil {
			return fmt.Errorf("failed to register no-service: %w", err)
		}
		fmt.Printf("✓ No-service recorded for %s (order %s)\n", sched.ClientName, o.ID)
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List service orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		finishedOnly, _ := cmd.Flags().GetBool("finished")

		var orders []*models.ServiceOrder
		var err error
		if finishedOnly {
			orders, err = wire.OrderService().GetFinishedServiceOrders(ctx)
		} else {
			orders, err = wire.OrderService().GetServiceOrders(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to list orders: %w", err)
		}
		if len(orders) == 0 {
			fmt.Println("No service orders found.")
			return nil
		}

		fmt.Printf("Found %d order(s):\n\n", len(orders))
		for _, o := range orders {
			fmt.Printf("%s %s: %s on %s %s\n", orderStatusIcon(o.Status), o.ID, o.ClientName, o.Date, orderStatusLabel(o.Status))
			if o.ServiceType != "" {
				fmt.Printf("   Service: %s\n", o.ServiceType)
			}
			if o.EndTime != "" {
				fmt.Printf("   Finished: %s\n", o.EndTime)
			}
			if o.NoServiceReason != "" {
				fmt.Printf("   No-service: %s\n", o.NoServiceReason)
			}
		}
		return nil
	},
}

var orderStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an order is active today",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		active, err := wire.OrderService().HasActiveServiceOrder(ctx)
		if err != nil {
			return fmt.Errorf("failed to check active order: %w", err)
		}
		next, err := wire.OrderService().NextOrderNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute next order number: %w", err)
		}

		if active {
			fmt.Println("An order is in progress today.")
		} else {
			fmt.Println("No order in progress today.")
		}
		fmt.Printf("Next order number: %d\n", next)
		return nil
	},
}

func orderStatusIcon(status string) string {
	switch status {
	case models.OrderStatusInProgress:
		return "🔧"
	case models.OrderStatusCompleted:
		return "✅"
	case models.OrderStatusApproved:
		return "🏅"
	case models.OrderStatusCancelled:
		return "🚫"
	default:
		return "📋"
	}
}

func orderStatusLabel(status string) string {
	switch status {
	case models.OrderStatusInProgress:
		return color.New(color.FgHiBlue).Sprintf("[%s]", status)
	case models.OrderStatusCompleted:
		return color.New(color.FgHiGreen).Sprintf("[%s]", status)
	case models.OrderStatusApproved:
		return color.New(color.FgHiCyan).Sprintf("[%s]", status)
	case models.OrderStatusCancelled:
		return color.New(color.FgRed).Sprintf("[%s]", status)
	default:
		return fmt.Sprintf("[%s]", status)
	}
}

func init() {
	orderFinishCmd.Flags().String("treatment", "", "Treatment description (required for treatment service types)")
	orderNoServiceCmd.Flags().String("reason", "", "Why the visit could not be performed")
	orderListCmd.Flags().Bool("finished", false, "Only completed or approved orders, newest first")

	orderCmd.AddCommand(orderStartCmd)
	orderCmd.AddCommand(orderFinishCmd)
	orderCmd.AddCommand(orderFinishAllCmd)
	orderCmd.AddCommand(orderApproveCmd)
	orderCmd.AddCommand(orderNoServiceCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderStatusCmd)
}

// OrderCmd returns the order command
func OrderCmd() *cobra.Command {
	return orderCmd
}
