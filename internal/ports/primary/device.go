package primary

import (
	"context"

	"github.com/example/safeprag/internal/models"
)

// DeviceSessionService manages the transient working set of devices
// inspected during an active order. Numbers are assigned by a
// monotonic per-session counter; saving merges the working set into
// the order's saved list without deduplication.
type DeviceSessionService interface {
	// AddDevice records a device in the working set and returns it
	// with its assigned number.
	AddDevice(session *DeviceSession, deviceType, status string) models.Device

	// SaveDevices appends the session's working set to the order's
	// saved-device list, persists the order, and clears the working
	// set.
	SaveDevices(ctx context.Context, session *DeviceSession, orderID string) error

	// Groups computes the grouped summary of an order's saved
	// devices.
	Groups(ctx context.Context, orderID string) ([]models.DeviceGroup, error)
}

// DeviceSession is the transient working state of one
// device-selection session. It lives only in memory while the session
// is open.
type DeviceSession struct {
	Working []models.Device
	Counter int
}
