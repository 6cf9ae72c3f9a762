package app

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/example/safeprag/internal/config"
	"github.com/example/safeprag/internal/core/order"
	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/primary"
	"github.com/example/safeprag/internal/ports/secondary"
)

const (
	dayFormat     = "2006-01-02"
	endTimeFormat = "15:04:05"
	sweepFormat   = "15:04"
)

// OrderServiceImpl implements the OrderService interface: the
// service-order lifecycle manager.
type OrderServiceImpl struct {
	orderRepo    secondary.OrderRepository
	scheduleRepo secondary.ScheduleRepository
	operatorRepo secondary.OperatorRepository
	clock        secondary.Clock
	cfg          *config.Config
	bus          *Bus
	maintenance  primary.MaintenanceService
}

// NewOrderService creates a new OrderService with injected
// dependencies. The maintenance service may be nil; lazy pruning is
// then skipped.
func NewOrderService(
	orderRepo secondary.OrderRepository,
	scheduleRepo secondary.ScheduleRepository,
	operatorRepo secondary.OperatorRepository,
	clock secondary.Clock,
	cfg *config.Config,
	bus *Bus,
	maintenance primary.MaintenanceService,
) *OrderServiceImpl {
	return &OrderServiceImpl{
		orderRepo:    orderRepo,
		scheduleRepo: scheduleRepo,
		operatorRepo: operatorRepo,
		clock:        clock,
		cfg:          cfg,
		bus:          bus,
		maintenance:  maintenance,
	}
}

// OnOrderChanged registers an observer for order transitions.
func (s *OrderServiceImpl) OnOrderChanged(fn func(primary.OrderEvent)) {
	s.bus.OnOrderChanged(fn)
}

// OnScheduleChanged registers an observer for schedule updates.
func (s *OrderServiceImpl) OnScheduleChanged(fn func(primary.ScheduleEvent)) {
	s.bus.OnScheduleChanged(fn)
}

// CreateServiceOrder opens an order for a schedule. The order takes
// the schedule's id (1:1 binding) and starts in_progress; the caller
// cascades the schedule status separately via UpdateScheduleStatus.
func (s *OrderServiceImpl) CreateServiceOrder(ctx context.Context, schedule *models.Schedule) (*models.ServiceOrder, error) {
	op, err := s.operatorRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve operator identity: %w", err)
	}
	if op == nil || op.Name == "" {
		return nil, &order.PreconditionError{Reason: "operator identity not configured"}
	}

	active, err := s.HasActiveServiceOrder(ctx)
	if err != nil {
		return nil, err
	}
	started, err := s.HasActiveSchedule(ctx, schedule.ID)
	if err != nil {
		return nil, err
	}

	guard := order.CanCreateOrder(order.CreateOrderContext{
		OperatorName:    op.Name,
		ScheduleID:      schedule.ID,
		HasActiveOrder:  active,
		ScheduleStarted: started,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	branch := schedule.ClientBranch
	if branch == "" {
		branch = schedule.ClientName
	}

	o := &models.ServiceOrder{
		ID:              schedule.ID,
		ScheduleID:      schedule.ID,
		ClientID:        schedule.ClientID,
		ClientName:      schedule.ClientName,
		ClientBranch:    branch,
		ClientAddress:   schedule.ClientAddress,
		ServiceType:     schedule.ServiceType,
		Date:            schedule.Date,
		StartTime:       schedule.StartTime,
		Status:          models.OrderStatusInProgress,
		CreatedAt:       now.Format(time.RFC3339),
		UpdatedAt:       now.Format(time.RFC3339),
		ControladorName: op.Name,
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist service order: %w", err)
	}
	return o, nil
}

// HasActiveServiceOrder reports whether any order dated today is in
// progress. Old orders are lazily pruned first.
func (s *OrderServiceImpl) HasActiveServiceOrder(ctx context.Context) (bool, error) {
	if s.maintenance != nil {
		if _, err := s.maintenance.CleanupServiceOrders(ctx); err != nil {
			log.Printf("warning: order cleanup before active check failed: %v", err)
		}
	}

	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return false, err
	}

	today := s.clock.Now().Format(dayFormat)
	for _, o := range orders {
		if order.IsActiveToday(o, today) {
			return true, nil
		}
	}
	return false, nil
}

// HasActiveSchedule reports whether the schedule already has an
// in-progress order, regardless of date.
func (s *OrderServiceImpl) HasActiveSchedule(ctx context.Context, scheduleID string) (bool, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return false, err
	}
	for _, o := range orders {
		if o.ScheduleID == scheduleID && o.Status == models.OrderStatusInProgress {
			return true, nil
		}
	}
	return false, nil
}

// FinishServiceOrder completes an order: stamps the end time, cascades
// the schedule to completed, and notifies observers. The order is
// persisted before the cascade and before any notification.
func (s *OrderServiceImpl) FinishServiceOrder(ctx context.Context, orderID string) (*models.ServiceOrder, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("service order %s: %w", orderID, order.ErrNotFound)
	}

	guard := order.CanFinishOrder(order.FinishOrderContext{
		ServiceType: o.ServiceType,
		Treatment:   o.Treatment,
	})
	if !guard.Allowed {
		return nil, &order.ValidationError{Field: "treatment", Reason: guard.Reason}
	}

	now := s.clock.Now()
	o.Status = models.OrderStatusCompleted
	o.EndTime = now.Format(endTimeFormat)
	o.UpdatedAt = now.Format(time.RFC3339)

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist finished order: %w", err)
	}

	if err := s.UpdateScheduleStatus(ctx, o.ScheduleID, models.ScheduleStatusCompleted); err != nil {
		return nil, err
	}

	s.bus.PublishOrder(primary.OrderEvent{
		OrderID:    o.ID,
		ScheduleID: o.ScheduleID,
		Status:     o.Status,
		EndTime:    o.EndTime,
	})
	return o, nil
}

// FinishAllActiveServiceOrders bulk-completes every in-progress order,
// cascades the affected schedules, then marks today's still-pending
// schedules complete where a completed order backs them.
func (s *OrderServiceImpl) FinishAllActiveServiceOrders(ctx context.Context) error {
	orders, err := s.GetAllServiceOrders(ctx)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	var affected []string
	for _, o := range orders {
		if o.Status != models.OrderStatusInProgress {
			continue
		}
		o.Status = models.OrderStatusCompleted
		o.EndTime = now.Format(sweepFormat)
		o.UpdatedAt = now.Format(time.RFC3339)
		affected = append(affected, o.ScheduleID)
	}

	if err := s.orderRepo.ReplaceAll(ctx, orders); err != nil {
		return fmt.Errorf("failed to persist bulk finish: %w", err)
	}

	for _, scheduleID := range affected {
		if err := s.UpdateScheduleStatus(ctx, scheduleID, models.ScheduleStatusCompleted); err != nil {
			return err
		}
	}

	return s.completePendingSchedules(ctx)
}

// completePendingSchedules marks today's pending schedules completed
// when a completed order backs them. A schedule is never completed
// without such an order.
func (s *OrderServiceImpl) completePendingSchedules(ctx context.Context) error {
	schedules, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	completed := make(map[string]bool)
	for _, o := range orders {
		if o.Status == models.OrderStatusCompleted {
			completed[o.ScheduleID] = true
		}
	}

	today := s.clock.Now().Format(dayFormat)
	for _, sched := range schedules {
		if sched.Date == today && completed[sched.ID] && sched.Status != models.ScheduleStatusCompleted {
			if err := s.UpdateScheduleStatus(ctx, sched.ID, models.ScheduleStatusCompleted); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApproveServiceOrder marks an order approved. There is deliberately
// no precondition on the prior status.
func (s *OrderServiceImpl) ApproveServiceOrder(ctx context.Context, orderID string) (*models.ServiceOrder, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("service order %s: %w", orderID, order.ErrNotFound)
	}

	o.Status = models.OrderStatusApproved
	o.UpdatedAt = s.clock.Now().Format(time.RFC3339)

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist approval: %w", err)
	}

	s.bus.PublishOrder(primary.OrderEvent{
		OrderID:    o.ID,
		ScheduleID: o.ScheduleID,
		Status:     o.Status,
	})
	return o, nil
}

// RegisterNoService records a visit that could not be performed: a
// new order born cancelled, never entering in_progress, with the
// schedule cascaded to cancelled.
func (s *OrderServiceImpl) RegisterNoService(ctx context.Context, schedule *models.Schedule, reason string) (*models.ServiceOrder, error) {
	now := s.clock.Now().Format(time.RFC3339)

	o := &models.ServiceOrder{
		ID:              uuid.NewString(),
		ScheduleID:      schedule.ID,
		ClientID:        schedule.ClientID,
		ClientName:      schedule.ClientName,
		ClientAddress:   schedule.ClientAddress,
		Date:            schedule.Date,
		Status:          models.OrderStatusCancelled,
		NoServiceReason: reason,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist no-service order: %w", err)
	}

	if err := s.UpdateScheduleStatus(ctx, schedule.ID, models.ScheduleStatusCancelled); err != nil {
		return nil, err
	}
	return o, nil
}

// SaveServiceOrder upserts an order, resolving the operator identity
// when the order carries none.
func (s *OrderServiceImpl) SaveServiceOrder(ctx context.Context, o *models.ServiceOrder) error {
	if o.ControladorName == "" {
		op, err := s.operatorRepo.Get(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve operator identity: %w", err)
		}
		if op == nil || op.Name == "" {
			return &order.PreconditionError{Reason: "operator identity not configured"}
		}
		o.ControladorName = op.Name
	}
	return s.orderRepo.Save(ctx, o)
}

// UpdateScheduleStatus persists a schedule status change and notifies
// both domain and store observers. A missing schedule is a logged
// no-op: schedules may be legitimately pruned while orders survive.
func (s *OrderServiceImpl) UpdateScheduleStatus(ctx context.Context, scheduleID, status string) error {
	sched, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if sched == nil {
		log.Printf("warning: schedule %s not found, status update to %s skipped", scheduleID, status)
		return nil
	}

	now := s.clock.Now()
	sched.Status = status
	sched.UpdatedAt = now.Format(time.RFC3339)

	if err := s.scheduleRepo.Save(ctx, sched); err != nil {
		return fmt.Errorf("failed to persist schedule status: %w", err)
	}

	s.bus.PublishSchedule(primary.ScheduleEvent{
		ScheduleID: scheduleID,
		Status:     status,
		Schedule:   sched,
		Timestamp:  now.Format(time.RFC3339),
	}, secondary.KeySchedules)
	return nil
}

// GetAllServiceOrders returns the order collection, applying the
// size-based sweep check and the count cap on the way.
func (s *OrderServiceImpl) GetAllServiceOrders(ctx context.Context) ([]*models.ServiceOrder, error) {
	if s.maintenance != nil {
		usage, err := s.maintenance.CheckStorageUsage(ctx)
		if err != nil {
			log.Printf("warning: storage usage check failed: %v", err)
		} else if usage.TotalMB > s.cfg.SoftLimitMB {
			log.Printf("warning: storage usage %.2f MB above soft limit", usage.TotalMB)
			if err := s.maintenance.CleanupStorageIfNeeded(ctx); err != nil {
				log.Printf("warning: storage sweep failed: %v", err)
			}
		}
	}

	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(orders) > s.cfg.MaxOrders {
		sort.Slice(orders, func(i, j int) bool {
			return orders[i].CreatedAt > orders[j].CreatedAt
		})
		orders = orders[:s.cfg.MaxOrders]
		if err := s.orderRepo.ReplaceAll(ctx, orders); err != nil {
			return nil, fmt.Errorf("failed to persist count-capped orders: %w", err)
		}
	}

	return orders, nil
}

// GetServiceOrders returns the collection after age-based pruning.
func (s *OrderServiceImpl) GetServiceOrders(ctx context.Context) ([]*models.ServiceOrder, error) {
	if s.maintenance != nil {
		if _, err := s.maintenance.CleanupServiceOrders(ctx); err != nil {
			log.Printf("warning: order cleanup failed: %v", err)
		}
	}
	return s.orderRepo.GetAll(ctx)
}

// GetFinishedServiceOrders returns completed or approved orders with
// an end time, most recently updated first.
func (s *OrderServiceImpl) GetFinishedServiceOrders(ctx context.Context) ([]*models.ServiceOrder, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var finished []*models.ServiceOrder
	for _, o := range orders {
		if order.IsFinished(o) {
			finished = append(finished, o)
		}
	}
	sort.Slice(finished, func(i, j int) bool {
		return finished[i].UpdatedAt > finished[j].UpdatedAt
	})
	return finished, nil
}

// NextOrderNumber returns the next display number for a new order.
func (s *OrderServiceImpl) NextOrderNumber(ctx context.Context) (int, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	return order.NextOrderNumber(ids), nil
}
