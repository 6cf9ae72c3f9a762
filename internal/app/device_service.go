package app

import (
	"context"
	"fmt"

	"github.com/example/safeprag/internal/core/device"
	"github.com/example/safeprag/internal/core/order"
	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/primary"
	"github.com/example/safeprag/internal/ports/secondary"
)

// DeviceSessionServiceImpl implements the DeviceSessionService
// interface: the working set of devices inspected during an order.
type DeviceSessionServiceImpl struct {
	orderRepo secondary.OrderRepository
}

// NewDeviceSessionService creates a new DeviceSessionService.
func NewDeviceSessionService(orderRepo secondary.OrderRepository) *DeviceSessionServiceImpl {
	return &DeviceSessionServiceImpl{orderRepo: orderRepo}
}

// AddDevice records a device in the session's working set. Numbers
// come from the session counter and never restart within a session.
func (s *DeviceSessionServiceImpl) AddDevice(session *primary.DeviceSession, deviceType, status string) models.Device {
	session.Counter++
	d := models.Device{
		ID:     session.Counter,
		Type:   deviceType,
		Status: status,
		Number: session.Counter,
	}
	session.Working = append(session.Working, d)
	return d
}

// SaveDevices appends the working set to the order's saved-device
// list and clears the session. Saved devices are concatenated across
// saves, never deduplicated: each save is a distinct inspection pass.
func (s *DeviceSessionServiceImpl) SaveDevices(ctx context.Context, session *primary.DeviceSession, orderID string) error {
	if len(session.Working) == 0 {
		return nil
	}

	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return fmt.Errorf("service order %s: %w", orderID, order.ErrNotFound)
	}

	o.SavedDevices = append(o.SavedDevices, session.Working...)
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return fmt.Errorf("failed to persist saved devices: %w", err)
	}

	session.Working = nil
	return nil
}

// Groups computes the grouped summary of an order's saved devices.
// Recomputed on every call, never cached.
func (s *DeviceSessionServiceImpl) Groups(ctx context.Context, orderID string) ([]models.DeviceGroup, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("service order %s: %w", orderID, order.ErrNotFound)
	}
	return device.Group(o.SavedDevices), nil
}
