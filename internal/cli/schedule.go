package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/primary"
	"github.com/example/safeprag/internal/wire"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage planned service visits",
	Long:  "Create, list, and reconcile schedules. Schedule status follows the linked service order and is never edited directly.",
}

var scheduleCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a planned visit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		clientID, _ := cmd.Flags().GetString("client")
		clientName, _ := cmd.Flags().GetString("client-name")
		date, _ := cmd.Flags().GetString("date")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		serviceType, _ := cmd.Flags().GetString("type")

		if clientID == "" && clientName == "" {
			return fmt.Errorf("client is required\nHint: use --client with a roster id, or --client-name for an ad-hoc client")
		}
		if clientID != "" && clientName == "" {
			client, err := wire.CatalogRepository().GetClientByID(ctx, clientID)
			if err != nil {
				return fmt.Errorf("failed to resolve client: %w", err)
			}
			if client == nil {
				return fmt.Errorf("client %s not found in roster", clientID)
			}
			clientName = client.Name
		}

		sched, err := wire.ScheduleService().CreateSchedule(ctx, primary.CreateScheduleRequest{
			ClientID:    clientID,
			ClientName:  clientName,
			ServiceType: serviceType,
			Date:        date,
			StartTime:   start,
			EndTime:     end,
		})
		if err != nil {
			return fmt.Errorf("failed to create schedule: %w", err)
		}

		fmt.Printf("✓ Created schedule %s: %s on %s %s-%s\n", sched.ID, sched.ClientName, sched.Date, sched.StartTime, sched.EndTime)
		return nil
	},
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		date, _ := cmd.Flags().GetString("date")
		status, _ := cmd.Flags().GetString("status")

		schedules, err := wire.ScheduleService().ListSchedules(ctx, primary.ScheduleFilters{Date: date, Status: status})
		if err != nil {
			return fmt.Errorf("failed to list schedules: %w", err)
		}
		if len(schedules) == 0 {
			fmt.Println("No schedules found.")
			return nil
		}

		fmt.Printf("Found %d schedule(s):\n\n", len(schedules))
		for _, s := range schedules {
			fmt.Printf("%s %s: %s on %s %s-%s %s\n",
				scheduleStatusIcon(s.Status), s.ID, s.ClientName, s.Date, s.StartTime, s.EndTime, scheduleStatusLabel(s.Status))
			if s.ServiceType != "" {
				fmt.Printf("   Service: %s\n", s.ServiceType)
			}
		}
		return nil
	},
}

var scheduleShowCmd = &cobra.Command{
	Use:   "show [schedule-id]",
	Short: "Show schedule details",
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

		fmt.Printf("Schedule: %s\n", sched.ID)
		fmt.Printf("Client: %s\n", sched.ClientName)
		if sched.ClientBranch != "" {
			fmt.Printf("Branch: %s\n", sched.ClientBranch)
		}
		if sched.ClientAddress != "" {
			fmt.Printf("Address: %s\n", sched.ClientAddress)
		}
		if sched.ServiceType != "" {
			fmt.Printf("Service: %s\n", sched.ServiceType)
		}
		fmt.Printf("Date: %s %s-%s\n", sched.Date, sched.StartTime, sched.EndTime)
		fmt.Printf("Status: %s\n", sched.Status)
		return nil
	},
}

var scheduleSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Reconcile schedule statuses with their orders",
	Long: `Reconciles schedules against their linked service orders: an
order's status drives the schedule, and past-due pending schedules
without an order are cancelled. With --date, not-yet-due cancellations
on that date are also reverted to pending.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		date, _ := cmd.Flags().GetString("date")

		if date != "" {
			if err := wire.ScheduleService().UpdateSchedulesStatusByDate(ctx, date); err != nil {
				return fmt.Errorf("failed to sweep schedules for %s: %w", date, err)
			}
			fmt.Printf("✓ Schedules for %s reconciled\n", date)
			return nil
		}

		if err := wire.ScheduleService().UpdateDailySchedulesStatus(ctx); err != nil {
			return fmt.Errorf("failed to sweep today's schedules: %w", err)
		}
		fmt.Println("✓ Today's schedules reconciled")
		return nil
	},
}

var scheduleRemindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Print reminders for upcoming visits",
	Long: `Announces pending schedules starting within the configured lead
window. Runs one pass by default; --watch keeps sweeping in the
background until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		scheduler := wire.ReminderScheduler()

		if err := scheduler.Sweep(context.Background()); err != nil {
			return fmt.Errorf("reminder sweep failed: %w", err)
		}
		if !watch {
			return nil
		}

		if err := scheduler.Start(); err != nil {
			return err
		}
		defer scheduler.Stop()

		fmt.Println("Watching for upcoming visits. Ctrl-C to stop.")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func scheduleStatusIcon(status string) string {
	switch status {
	case models.ScheduleStatusPending:
		return "📅"
	case models.ScheduleStatusInProgress:
		return "🔧"
	case models.ScheduleStatusCompleted:
		return "✅"
	case models.ScheduleStatusCancelled:
		return "🚫"
	default:
		return "📋"
	}
}

func scheduleStatusLabel(status string) string {
	switch status {
	case models.ScheduleStatusInProgress:
		return color.New(color.FgHiBlue).Sprintf("[%s]", status)
	case models.ScheduleStatusCompleted:
		return color.New(color.FgHiGreen).Sprintf("[%s]", status)
	case models.ScheduleStatusCancelled:
		return color.New(color.FgRed).Sprintf("[%s]", status)
	default:
		return fmt.Sprintf("[%s]", status)
	}
}

func init() {
	scheduleCreateCmd.Flags().String("client", "", "Client id from the roster")
	scheduleCreateCmd.Flags().String("client-name", "", "Client name (ad-hoc, bypasses the roster)")
	scheduleCreateCmd.Flags().String("date", "", "Visit date (YYYY-MM-DD)")
	scheduleCreateCmd.Flags().String("start", "", "Start time (HH:mm)")
	scheduleCreateCmd.Flags().String("end", "", "End time (HH:mm)")
	scheduleCreateCmd.Flags().String("type", "", "Service type (e.g. inspecao, pulverizacao)")

	scheduleListCmd.Flags().String("date", "", "Filter by date (YYYY-MM-DD)")
	scheduleListCmd.Flags().String("status", "", "Filter by status")

	scheduleSweepCmd.Flags().String("date", "", "Sweep a specific date instead of today")

	scheduleRemindCmd.Flags().Bool("watch", false, "Keep sweeping until interrupted")

	scheduleCmd.AddCommand(scheduleCreateCmd)
	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleShowCmd)
	scheduleCmd.AddCommand(scheduleSweepCmd)
	scheduleCmd.AddCommand(scheduleRemindCmd)
}

// ScheduleCmd returns the schedule command
func ScheduleCmd() *cobra.Command {
	return scheduleCmd
}
