// Package primary defines the primary ports (driving interfaces) for
// the application. CLI adapters call these; internal/app implements
// them.
package primary

import (
	"context"

	"github.com/example/safeprag/internal/models"
)

// OrderEvent is emitted after an order transition has been persisted.
// Observers are expected to re-read the store rather than trust the
// payload to be complete.
type OrderEvent struct {
	OrderID    string
	ScheduleID string
	Status     string
	EndTime    string
}

// ScheduleEvent is emitted after a schedule status update has been
// persisted.
type ScheduleEvent struct {
	ScheduleID string
	Status     string
	Schedule   *models.Schedule
	Timestamp  string
}

// OrderService is the service-order lifecycle manager.
type OrderService interface {
	// CreateServiceOrder opens an order for a schedule. Fails with
	// *order.PreconditionError when no operator identity is
	// configured, and with a guard error when another order is
	// already active.
	CreateServiceOrder(ctx context.Context, schedule *models.Schedule) (*models.ServiceOrder, error)

	// HasActiveServiceOrder reports whether any order dated today is
	// in progress. Prunes orders past the retention window first.
	HasActiveServiceOrder(ctx context.Context) (bool, error)

	// HasActiveSchedule reports whether the given schedule already
	// has an in-progress order.
	HasActiveSchedule(ctx context.Context, scheduleID string) (bool, error)

	// FinishServiceOrder completes an in-progress order, stamps its
	// end time, and cascades the schedule to completed.
	FinishServiceOrder(ctx context.Context, orderID string) (*models.ServiceOrder, error)

	// FinishAllActiveServiceOrders bulk-completes every in-progress
	// order and sweeps today's pending schedules whose order is now
	// completed. Administrative recovery operation.
	FinishAllActiveServiceOrders(ctx context.Context) error

	// ApproveServiceOrder marks an order approved. No precondition on
	// prior status.
	ApproveServiceOrder(ctx context.Context, orderID string) (*models.ServiceOrder, error)

	// RegisterNoService records that a scheduled visit could not be
	// performed, creating an order directly in cancelled state.
	RegisterNoService(ctx context.Context, schedule *models.Schedule, reason string) (*models.ServiceOrder, error)

	// SaveServiceOrder upserts an order, resolving the operator
	// identity if the order carries none.
	SaveServiceOrder(ctx context.Context, o *models.ServiceOrder) error

	// UpdateScheduleStatus persists a schedule status change and
	// notifies observers. A missing schedule is a logged no-op.
	UpdateScheduleStatus(ctx context.Context, scheduleID, status string) error

	// GetAllServiceOrders returns the order collection after lazy
	// size and count pruning.
	GetAllServiceOrders(ctx context.Context) ([]*models.ServiceOrder, error)

	// GetServiceOrders returns the collection after age pruning.
	GetServiceOrders(ctx context.Context) ([]*models.ServiceOrder, error)

	// GetFinishedServiceOrders returns completed or approved orders
	// with an end time, newest first.
	GetFinishedServiceOrders(ctx context.Context) ([]*models.ServiceOrder, error)

	// NextOrderNumber returns the next display number for a new
	// order.
	NextOrderNumber(ctx context.Context) (int, error)

	// OnOrderChanged registers an observer for order transitions.
	OnOrderChanged(fn func(OrderEvent))

	// OnScheduleChanged registers an observer for schedule updates.
	OnScheduleChanged(fn func(ScheduleEvent))
}
