package primary

import (
	"context"

	"github.com/example/safeprag/internal/models"
)

// ScheduleService manages the planned-visit registry. Status changes
// always route through the order lifecycle; this service only reads,
// creates, and sweeps.
type ScheduleService interface {
	// ListSchedules returns schedules, optionally filtered by date
	// (ISO day) and status.
	ListSchedules(ctx context.Context, filters ScheduleFilters) ([]*models.Schedule, error)

	// GetSchedule retrieves one schedule by id.
	GetSchedule(ctx context.Context, id string) (*models.Schedule, error)

	// CreateSchedule registers a planned visit in pending status.
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*models.Schedule, error)

	// UpdateDailySchedulesStatus reconciles today's schedules with
	// their linked orders: order status drives schedule status, and
	// past-due pending schedules without an order become cancelled.
	UpdateDailySchedulesStatus(ctx context.Context) error

	// UpdateSchedulesStatusByDate reconciles the schedules of a
	// given date, additionally reverting not-yet-due cancellations
	// back to pending.
	UpdateSchedulesStatusByDate(ctx context.Context, date string) error
}

// ScheduleFilters contains filter options for listing schedules.
type ScheduleFilters struct {
	Date   string
	Status string
}

// CreateScheduleRequest carries the validated fields for a new
// schedule.
type CreateScheduleRequest struct {
	ClientID      string
	ClientName    string
	ClientBranch  string
	ClientAddress string
	ClientContact string
	ClientPhone   string
	ServiceType   string
	Date          string
	StartTime     string
	EndTime       string
}
