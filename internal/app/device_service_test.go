package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/safeprag/internal/core/order"
	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/primary"
)

func TestAddDevice_MonotonicNumbering(t *testing.T) {
	svc := NewDeviceSessionService(&mockOrderRepository{})
	session := &primary.DeviceSession{}

	d1 := svc.AddDevice(session, "armadilha luminosa", "conforme")
	d2 := svc.AddDevice(session, "armadilha luminosa", "")
	d3 := svc.AddDevice(session, "isca", "roido")

	if d1.Number != 1 || d2.Number != 2 || d3.Number != 3 {
		t.Errorf("expected numbers 1,2,3, got %d,%d,%d", d1.Number, d2.Number, d3.Number)
	}
	if len(session.Working) != 3 {
		t.Errorf("expected 3 devices in working set, got %d", len(session.Working))
	}
}

func TestSaveDevices_AppendsAndClearsSession(t *testing.T) {
	orderRepo := &mockOrderRepository{
		orders: []*models.ServiceOrder{{ID: "1", Status: models.OrderStatusInProgress}},
	}
	svc := NewDeviceSessionService(orderRepo)
	ctx := context.Background()

	session := &primary.DeviceSession{}
	svc.AddDevice(session, "isca", "conforme")
	svc.AddDevice(session, "isca", "roido")

	if err := svc.SaveDevices(ctx, session, "1"); err != nil {
		t.Fatalf("SaveDevices failed: %v", err)
	}
	if len(session.Working) != 0 {
		t.Errorf("expected session cleared, got %d devices", len(session.Working))
	}

	// Session counter survives the save: a second pass continues the
	// numbering rather than colliding with the first.
	svc.AddDevice(session, "isca", "conforme")
	if session.Working[0].Number != 3 {
		t.Errorf("expected numbering to continue at 3, got %d", session.Working[0].Number)
	}
	if err := svc.SaveDevices(ctx, session, "1"); err != nil {
		t.Fatalf("second SaveDevices failed: %v", err)
	}

	o, _ := orderRepo.GetByID(ctx, "1")
	if len(o.SavedDevices) != 3 {
		t.Errorf("expected saves concatenated to 3 devices, got %d", len(o.SavedDevices))
	}
}

func TestSaveDevices_EmptySessionIsNoOp(t *testing.T) {
	orderRepo := &mockOrderRepository{}
	svc := NewDeviceSessionService(orderRepo)

	// No order exists; an empty working set never touches the repo.
	if err := svc.SaveDevices(context.Background(), &primary.DeviceSession{}, "99"); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}

func TestSaveDevices_OrderNotFound(t *testing.T) {
	svc := NewDeviceSessionService(&mockOrderRepository{})
	session := &primary.DeviceSession{}
	svc.AddDevice(session, "isca", "conforme")

	err := svc.SaveDevices(context.Background(), session, "99")
	if !errors.Is(err, order.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(session.Working) != 1 {
		t.Error("expected working set kept on failure")
	}
}

func TestGroups(t *testing.T) {
	orderRepo := &mockOrderRepository{
		orders: []*models.ServiceOrder{{
			ID: "1",
			SavedDevices: []models.Device{
				{Number: 1, Type: "isca", Status: "conforme"},
				{Number: 2, Type: "isca", Status: "conforme"},
				{Number: 3, Type: "isca", Status: "roido"},
				{Number: 4, Type: "armadilha", Status: ""},
			},
		}},
	}
	svc := NewDeviceSessionService(orderRepo)

	groups, err := svc.Groups(context.Background(), "1")
	if err != nil {
		t.Fatalf("Groups failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Type != "isca" || groups[0].Quantity != 3 {
		t.Errorf("unexpected first group: %+v", groups[0])
	}
	if groups[1].Type != "armadilha" || groups[1].Status[0].Name != models.DeviceStatusNA {
		t.Errorf("expected status-less device bucketed as N/A, got %+v", groups[1])
	}
}

func TestGroups_OrderNotFound(t *testing.T) {
	svc := NewDeviceSessionService(&mockOrderRepository{})

	_, err := svc.Groups(context.Background(), "99")
	if !errors.Is(err, order.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
