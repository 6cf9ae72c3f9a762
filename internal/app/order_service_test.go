package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/safeprag/internal/core/order"
	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/primary"
)

func TestCreateServiceOrder_Success(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()
	ctx := context.Background()

	o, err := svc.CreateServiceOrder(ctx, testSchedule("1"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if o.ID != "1" || o.ScheduleID != "1" {
		t.Errorf("expected order bound 1:1 to schedule 1, got id %s scheduleId %s", o.ID, o.ScheduleID)
	}
	if o.Status != models.OrderStatusInProgress {
		t.Errorf("expected status in_progress, got %s", o.Status)
	}
	if o.ControladorName != "Carlos Silva" {
		t.Errorf("expected operator name stamped, got %q", o.ControladorName)
	}
	if len(orderRepo.orders) != 1 {
		t.Errorf("expected 1 persisted order, got %d", len(orderRepo.orders))
	}
}

func TestCreateServiceOrder_NoOperatorIdentity(t *testing.T) {
	svc, orderRepo, _, operatorRepo := newTestOrderService()
	ctx := context.Background()

	operatorRepo.operator = nil

	_, err := svc.CreateServiceOrder(ctx, testSchedule("1"))
	var pre *order.PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("expected PreconditionError, got %v", err)
	}
	if len(orderRepo.orders) != 0 {
		t.Error("expected no partial state written")
	}
}

func TestCreateServiceOrder_ClientBranchFallsBackToName(t *testing.T) {
	svc, _, _, _ := newTestOrderService()
	ctx := context.Background()

	o, err := svc.CreateServiceOrder(ctx, testSchedule("1"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if o.ClientBranch != "Padaria Central" {
		t.Errorf("expected branch fallback to client name, got %q", o.ClientBranch)
	}
}

// At most one order may be active per day system-wide.
func TestCreateServiceOrder_ActiveOrderGate(t *testing.T) {
	svc, _, _, _ := newTestOrderService()
	ctx := context.Background()

	active, err := svc.HasActiveServiceOrder(ctx)
	if err != nil {
		t.Fatalf("HasActiveServiceOrder failed: %v", err)
	}
	if active {
		t.Error("expected no active order before first creation")
	}

	if _, err := svc.CreateServiceOrder(ctx, testSchedule("1")); err != nil {
		t.Fatalf("first creation failed: %v", err)
	}

	active, err = svc.HasActiveServiceOrder(ctx)
	if err != nil {
		t.Fatalf("HasActiveServiceOrder failed: %v", err)
	}
	if !active {
		t.Error("expected active order after creation")
	}

	if _, err := svc.CreateServiceOrder(ctx, testSchedule("2")); err == nil {
		t.Error("expected second creation to be rejected while first is active")
	}
}

func TestHasActiveServiceOrder_IgnoresOtherDays(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()
	ctx := context.Background()

	orderRepo.orders = []*models.ServiceOrder{{
		ID:         "1",
		ScheduleID: "1",
		Date:       testNow.AddDate(0, 0, -1).Format(dayFormat),
		Status:     models.OrderStatusInProgress,
		CreatedAt:  testNow.AddDate(0, 0, -1).Format(time.RFC3339),
	}}

	active, err := svc.HasActiveServiceOrder(ctx)
	if err != nil {
		t.Fatalf("HasActiveServiceOrder failed: %v", err)
	}
	if active {
		t.Error("expected yesterday's in_progress order to not count as active today")
	}
}

func TestHasActiveServiceOrder_PrunesOldOrdersFirst(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()
	ctx := context.Background()

	orderRepo.orders = []*models.ServiceOrder{
		{ID: "1", Status: models.OrderStatusCompleted, CreatedAt: testNow.AddDate(0, 0, -45).Format(time.RFC3339)},
		{ID: "2", Status: models.OrderStatusCompleted, CreatedAt: testNow.AddDate(0, 0, -5).Format(time.RFC3339)},
	}

	if _, err := svc.HasActiveServiceOrder(ctx); err != nil {
		t.Fatalf("HasActiveServiceOrder failed: %v", err)
	}

	if len(orderRepo.orders) != 1 || orderRepo.orders[0].ID != "2" {
		t.Errorf("expected order 1 pruned by age, got %+v", orderRepo.orders)
	}
}

func TestHasActiveSchedule(t *testing.T) {
	svc, _, _, _ := newTestOrderService()
	ctx := context.Background()

	if _, err := svc.CreateServiceOrder(ctx, testSchedule("5")); err != nil {
		t.Fatalf("creation failed: %v", err)
	}

	started, err := svc.HasActiveSchedule(ctx, "5")
	if err != nil {
		t.Fatalf("HasActiveSchedule failed: %v", err)
	}
	if !started {
		t.Error("expected schedule 5 to be active")
	}

	started, err = svc.HasActiveSchedule(ctx, "6")
	if err != nil {
		t.Fatalf("HasActiveSchedule failed: %v", err)
	}
	if started {
		t.Error("expected schedule 6 to not be active")
	}
}

// End-to-end: create from a pending schedule, finish a non-treatment
// order, observe order and schedule both completed.
func TestFinishServiceOrder_Success(t *testing.T) {
	svc, orderRepo, scheduleRepo, _ := newTestOrderService()
	ctx := context.Background()

	s1 := testSchedule("1")
	scheduleRepo.schedules = []*models.Schedule{s1}

	o1, err := svc.CreateServiceOrder(ctx, s1)
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}

	var event primary.OrderEvent
	svc.OnOrderChanged(func(e primary.OrderEvent) { event = e })

	finished, err := svc.FinishServiceOrder(ctx, o1.ID)
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if finished.Status != models.OrderStatusCompleted {
		t.Errorf("expected status completed, got %s", finished.Status)
	}
	if finished.EndTime != "14:30:05" {
		t.Errorf("expected end time 14:30:05, got %s", finished.EndTime)
	}

	// Schedule cascaded to completed
	stored, _ := scheduleRepo.GetByID(ctx, "1")
	if stored.Status != models.ScheduleStatusCompleted {
		t.Errorf("expected schedule completed, got %s", stored.Status)
	}

	// Notification carries the transition
	if event.OrderID != "1" || event.Status != models.OrderStatusCompleted || event.EndTime != "14:30:05" {
		t.Errorf("unexpected order event: %+v", event)
	}

	// Order persisted, not just mutated in memory
	persisted, _ := orderRepo.GetByID(ctx, "1")
	if persisted.Status != models.OrderStatusCompleted {
		t.Errorf("expected persisted status completed, got %s", persisted.Status)
	}
}

func TestFinishServiceOrder_NotFound(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	_, err := svc.FinishServiceOrder(context.Background(), "99")
	if !errors.Is(err, order.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// Treatment types require the treatment field; failure leaves both
// order and schedule untouched.
func TestFinishServiceOrder_TreatmentRequired(t *testing.T) {
	svc, orderRepo, scheduleRepo, _ := newTestOrderService()
	ctx := context.Background()

	s1 := testSchedule("1")
	s1.ServiceType = "pulverizacao"
	scheduleRepo.schedules = []*models.Schedule{s1}

	o1, err := svc.CreateServiceOrder(ctx, s1)
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}

	_, err = svc.FinishServiceOrder(ctx, o1.ID)
	var validation *order.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	persisted, _ := orderRepo.GetByID(ctx, o1.ID)
	if persisted.Status != models.OrderStatusInProgress {
		t.Errorf("expected order to stay in_progress, got %s", persisted.Status)
	}
	stored, _ := scheduleRepo.GetByID(ctx, "1")
	if stored.Status != models.ScheduleStatusPending {
		t.Errorf("expected schedule to stay pending, got %s", stored.Status)
	}
}

func TestFinishServiceOrder_TreatmentSetSucceeds(t *testing.T) {
	svc, orderRepo, scheduleRepo, _ := newTestOrderService()
	ctx := context.Background()

	s1 := testSchedule("1")
	s1.ServiceType = "pulverizacao"
	scheduleRepo.schedules = []*models.Schedule{s1}

	o1, err := svc.CreateServiceOrder(ctx, s1)
	if err != nil {
		t.Fatalf("creation failed: %v", err)
	}
	o1.Treatment = "barreira quimica perimetral"
	if err := orderRepo.Save(ctx, o1); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := svc.FinishServiceOrder(ctx, o1.ID); err != nil {
		t.Errorf("expected finish to succeed with treatment set, got %v", err)
	}
}

func TestRegisterNoService(t *testing.T) {
	svc, orderRepo, scheduleRepo, _ := newTestOrderService()
	ctx := context.Background()

	s1 := testSchedule("1")
	scheduleRepo.schedules = []*models.Schedule{s1}

	o, err := svc.RegisterNoService(ctx, s1, "cliente ausente")
	if err != nil {
		t.Fatalf("RegisterNoService failed: %v", err)
	}
	if o.Status != models.OrderStatusCancelled {
		t.Errorf("expected cancelled, got %s", o.Status)
	}
	if o.NoServiceReason != "cliente ausente" {
		t.Errorf("expected reason recorded, got %q", o.NoServiceReason)
	}
	if o.ID == "" || o.ID == "1" {
		t.Errorf("expected generated id distinct from schedule id, got %q", o.ID)
	}

	stored, _ := scheduleRepo.GetByID(ctx, "1")
	if stored.Status != models.ScheduleStatusCancelled {
		t.Errorf("expected schedule cancelled, got %s", stored.Status)
	}
	if len(orderRepo.orders) != 1 {
		t.Errorf("expected 1 persisted order, got %d", len(orderRepo.orders))
	}
}

func TestApproveServiceOrder(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()
	ctx := context.Background()

	orderRepo.orders = []*models.ServiceOrder{{
		ID:     "3",
		Status: models.OrderStatusCompleted,
	}}

	var event primary.OrderEvent
	svc.OnOrderChanged(func(e primary.OrderEvent) { event = e })

	o, err := svc.ApproveServiceOrder(ctx, "3")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if o.Status != models.OrderStatusApproved {
		t.Errorf("expected approved, got %s", o.Status)
	}
	if event.OrderID != "3" || event.Status != models.OrderStatusApproved {
		t.Errorf("unexpected event: %+v", event)
	}
}

// Approval has no precondition on prior status.
func TestApproveServiceOrder_InProgressAllowed(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()

	orderRepo.orders = []*models.ServiceOrder{{ID: "3", Status: models.OrderStatusInProgress}}

	o, err := svc.ApproveServiceOrder(context.Background(), "3")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if o.Status != models.OrderStatusApproved {
		t.Errorf("expected approved, got %s", o.Status)
	}
}

func TestApproveServiceOrder_NotFound(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	_, err := svc.ApproveServiceOrder(context.Background(), "99")
	if !errors.Is(err, order.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFinishAllActiveServiceOrders(t *testing.T) {
	svc, orderRepo, scheduleRepo, _ := newTestOrderService()
	ctx := context.Background()

	today := testNow.Format(dayFormat)
	scheduleRepo.schedules = []*models.Schedule{
		{ID: "1", Date: today, Status: models.ScheduleStatusInProgress},
		{ID: "2", Date: today, Status: models.ScheduleStatusPending},
		{ID: "3", Date: today, Status: models.ScheduleStatusPending},
	}
	orderRepo.orders = []*models.ServiceOrder{
		{ID: "1", ScheduleID: "1", Date: today, Status: models.OrderStatusInProgress, CreatedAt: testNow.Format(time.RFC3339)},
		{ID: "2", ScheduleID: "2", Date: today, Status: models.OrderStatusCompleted, CreatedAt: testNow.Format(time.RFC3339)},
	}

	if err := svc.FinishAllActiveServiceOrders(ctx); err != nil {
		t.Fatalf("FinishAllActiveServiceOrders failed: %v", err)
	}

	for _, o := range orderRepo.orders {
		if o.Status != models.OrderStatusCompleted {
			t.Errorf("expected order %s completed, got %s", o.ID, o.Status)
		}
	}

	s1, _ := scheduleRepo.GetByID(ctx, "1")
	if s1.Status != models.ScheduleStatusCompleted {
		t.Errorf("expected schedule 1 completed, got %s", s1.Status)
	}
	// Pending schedule with a completed order gets swept
	s2, _ := scheduleRepo.GetByID(ctx, "2")
	if s2.Status != models.ScheduleStatusCompleted {
		t.Errorf("expected schedule 2 swept to completed, got %s", s2.Status)
	}
	// Pending schedule without an order stays pending
	s3, _ := scheduleRepo.GetByID(ctx, "3")
	if s3.Status != models.ScheduleStatusPending {
		t.Errorf("expected schedule 3 untouched, got %s", s3.Status)
	}
}

// A missing schedule is a logged no-op, not a failure: schedules may
// have been pruned while their orders survive.
func TestUpdateScheduleStatus_MissingScheduleIsSoftFailure(t *testing.T) {
	svc, _, _, _ := newTestOrderService()

	if err := svc.UpdateScheduleStatus(context.Background(), "ghost", models.ScheduleStatusCompleted); err != nil {
		t.Errorf("expected soft failure, got %v", err)
	}
}

func TestUpdateScheduleStatus_EmitsBothChannels(t *testing.T) {
	svc, _, scheduleRepo, _ := newTestOrderService()
	ctx := context.Background()

	scheduleRepo.schedules = []*models.Schedule{testSchedule("1")}

	var domainEvent primary.ScheduleEvent
	var storeKey string
	svc.OnScheduleChanged(func(e primary.ScheduleEvent) { domainEvent = e })
	svc.bus.OnStoreChanged(func(key string) { storeKey = key })

	if err := svc.UpdateScheduleStatus(ctx, "1", models.ScheduleStatusCompleted); err != nil {
		t.Fatalf("UpdateScheduleStatus failed: %v", err)
	}

	if domainEvent.ScheduleID != "1" || domainEvent.Status != models.ScheduleStatusCompleted {
		t.Errorf("unexpected schedule event: %+v", domainEvent)
	}
	if domainEvent.Schedule == nil || domainEvent.Schedule.Status != models.ScheduleStatusCompleted {
		t.Error("expected event to carry the updated schedule")
	}
	if storeKey != "safeprag_schedules" {
		t.Errorf("expected store notification for schedules key, got %q", storeKey)
	}
}

func TestGetAllServiceOrders_CapsAtMaxKeepingNewest(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()
	ctx := context.Background()

	for i := 0; i < 105; i++ {
		orderRepo.orders = append(orderRepo.orders, &models.ServiceOrder{
			ID:        fmt.Sprintf("%d", i+1),
			CreatedAt: testNow.Add(-time.Duration(i) * time.Minute).Format(time.RFC3339),
		})
	}

	orders, err := svc.GetAllServiceOrders(ctx)
	if err != nil {
		t.Fatalf("GetAllServiceOrders failed: %v", err)
	}
	if len(orders) != 100 {
		t.Fatalf("expected cap at 100, got %d", len(orders))
	}
	// Newest first after the cap; the five oldest are gone
	if orders[0].ID != "1" {
		t.Errorf("expected newest order first, got %s", orders[0].ID)
	}
	if len(orderRepo.orders) != 100 {
		t.Errorf("expected cap persisted, store holds %d", len(orderRepo.orders))
	}
}

func TestGetFinishedServiceOrders(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()
	ctx := context.Background()

	orderRepo.orders = []*models.ServiceOrder{
		{ID: "1", Status: models.OrderStatusCompleted, EndTime: "10:00:00", UpdatedAt: "2026-09-01T10:00:00Z"},
		{ID: "2", Status: models.OrderStatusApproved, EndTime: "11:00:00", UpdatedAt: "2026-09-01T11:00:00Z"},
		{ID: "3", Status: models.OrderStatusInProgress},
		{ID: "4", Status: models.OrderStatusCancelled},
		{ID: "5", Status: models.OrderStatusCompleted}, // no end time
	}

	finished, err := svc.GetFinishedServiceOrders(ctx)
	if err != nil {
		t.Fatalf("GetFinishedServiceOrders failed: %v", err)
	}
	if len(finished) != 2 {
		t.Fatalf("expected 2 finished orders, got %d", len(finished))
	}
	if finished[0].ID != "2" || finished[1].ID != "1" {
		t.Errorf("expected newest first, got %s, %s", finished[0].ID, finished[1].ID)
	}
}

func TestNextOrderNumber_IgnoresNonNumericIDs(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()

	orderRepo.orders = []*models.ServiceOrder{
		{ID: "3"}, {ID: "7"}, {ID: "x"}, {ID: "2"},
	}

	next, err := svc.NextOrderNumber(context.Background())
	if err != nil {
		t.Fatalf("NextOrderNumber failed: %v", err)
	}
	if next != 8 {
		t.Errorf("expected next number 8, got %d", next)
	}
}

func TestSaveServiceOrder_ResolvesOperator(t *testing.T) {
	svc, orderRepo, _, _ := newTestOrderService()
	ctx := context.Background()

	if err := svc.SaveServiceOrder(ctx, &models.ServiceOrder{ID: "1"}); err != nil {
		t.Fatalf("SaveServiceOrder failed: %v", err)
	}
	persisted, _ := orderRepo.GetByID(ctx, "1")
	if persisted.ControladorName != "Carlos Silva" {
		t.Errorf("expected operator resolved, got %q", persisted.ControladorName)
	}
}

func TestSaveServiceOrder_NoOperator(t *testing.T) {
	svc, _, _, operatorRepo := newTestOrderService()
	operatorRepo.operator = nil

	err := svc.SaveServiceOrder(context.Background(), &models.ServiceOrder{ID: "1"})
	var pre *order.PreconditionError
	if !errors.As(err, &pre) {
		t.Errorf("expected PreconditionError, got %v", err)
	}
}
