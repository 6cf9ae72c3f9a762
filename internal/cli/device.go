package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/safeprag/internal/core/device"
	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/primary"
	"github.com/example/safeprag/internal/wire"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Record inspected devices on an order",
	Long:  "Add inspected monitoring devices to a service order and view their grouped summary",
}

var deviceAddCmd = &cobra.Command{
	Use:   "add [order-id]",
	Short: "Record inspected devices",
	Long: `Records one or more devices of a type on the order. Device numbers
continue the order's existing sequence; repeated adds concatenate.

Examples:
  safeprag device add 1 --type isca --status conforme --count 3
  safeprag device add 1 --type "armadilha luminosa"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		deviceType, _ := cmd.Flags().GetString("type")
		status, _ := cmd.Flags().GetString("status")
		count, _ := cmd.Flags().GetInt("count")

		if strings.TrimSpace(deviceType) == "" {
			return fmt.Errorf("device type is required\nHint: use --type")
		}
		if count < 1 {
			return fmt.Errorf("count must be at least 1")
		}

		// Seed the session counter from the order so numbering
		// continues across invocations.
		groups, err := wire.DeviceService().Groups(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to read order devices: %w", err)
		}
		saved := 0
		for _, g := range groups {
			saved += g.Quantity
		}

		session := &primary.DeviceSession{Counter: saved}
		for i := 0; i < count; i++ {
			wire.DeviceService().AddDevice(session, deviceType, status)
		}
		if err := wire.DeviceService().SaveDevices(ctx, session, args[0]); err != nil {
			return fmt.Errorf("failed to save devices: %w", err)
		}

		fmt.Printf("✓ Recorded %d device(s) of type %s on order %s\n", count, deviceType, args[0])
		return nil
	},
}

var deviceSummaryCmd = &cobra.Command{
	Use:   "summary [order-id]",
	Short: "Show the grouped device summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := wire.DeviceService().Groups(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to summarize devices: %w", err)
		}
		if len(groups) == 0 {
			fmt.Println("No devices recorded.")
			return nil
		}

		for _, g := range groups {
			fmt.Printf("%s (%d):\n", g.Type, g.Quantity)
			for _, sc := range device.SortedStatus(g) {
				label := sc.Name
				if label == models.DeviceStatusNA {
					label = "sem status"
				}
				fmt.Printf("  %-14s %d (%s%%)  %s\n", label, sc.Count, device.Percentage(sc.Count, g.Quantity), device.FormatRanges(sc.Devices))
			}
		}
		return nil
	},
}

func init() {
	deviceAddCmd.Flags().String("type", "", "Device type (e.g. isca, armadilha luminosa)")
	deviceAddCmd.Flags().String("status", "", "Inspection status (empty records as N/A)")
	deviceAddCmd.Flags().Int("count", 1, "How many devices of this type/status to record")

	deviceCmd.AddCommand(deviceAddCmd)
	deviceCmd.AddCommand(deviceSummaryCmd)
}

// DeviceCmd returns the device command
func DeviceCmd() *cobra.Command {
	return deviceCmd
}
