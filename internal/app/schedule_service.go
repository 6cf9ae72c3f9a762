package app

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/example/safeprag/internal/core/schedule"
	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/primary"
	"github.com/example/safeprag/internal/ports/secondary"
)

// StatusUpdater is the slice of the order lifecycle the schedule
// sweeps need: the cascading, notifying status update.
type StatusUpdater interface {
	UpdateScheduleStatus(ctx context.Context, scheduleID, status string) error
}

// ScheduleServiceImpl implements the ScheduleService interface.
type ScheduleServiceImpl struct {
	scheduleRepo secondary.ScheduleRepository
	orderRepo    secondary.OrderRepository
	clock        secondary.Clock
	updater      StatusUpdater
}

// NewScheduleService creates a new ScheduleService with injected
// dependencies.
func NewScheduleService(
	scheduleRepo secondary.ScheduleRepository,
	orderRepo secondary.OrderRepository,
	clock secondary.Clock,
	updater StatusUpdater,
) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{
		scheduleRepo: scheduleRepo,
		orderRepo:    orderRepo,
		clock:        clock,
		updater:      updater,
	}
}

// ListSchedules returns schedules matching the given filters.
func (s *ScheduleServiceImpl) ListSchedules(ctx context.Context, filters primary.ScheduleFilters) ([]*models.Schedule, error) {
	schedules, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var result []*models.Schedule
	for _, sched := range schedules {
		if filters.Date != "" && sched.Date != filters.Date {
			continue
		}
		if filters.Status != "" && sched.Status != filters.Status {
			continue
		}
		result = append(result, sched)
	}
	return result, nil
}

// GetSchedule retrieves one schedule by id.
func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, id string) (*models.Schedule, error) {
	return s.scheduleRepo.GetByID(ctx, id)
}

// CreateSchedule registers a planned visit in pending status. IDs are
// sequential integers so the order numbering scan stays meaningful.
func (s *ScheduleServiceImpl) CreateSchedule(ctx context.Context, req primary.CreateScheduleRequest) (*models.Schedule, error) {
	schedules, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	max := 0
	for _, sched := range schedules {
		if n, err := strconv.Atoi(sched.ID); err == nil && n > max {
			max = n
		}
	}

	sched := &models.Schedule{
		ID:            strconv.Itoa(max + 1),
		ClientID:      req.ClientID,
		ClientName:    req.ClientName,
		ClientBranch:  req.ClientBranch,
		ClientAddress: req.ClientAddress,
		ClientContact: req.ClientContact,
		ClientPhone:   req.ClientPhone,
		ServiceType:   req.ServiceType,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Status:        models.ScheduleStatusPending,
		UpdatedAt:     s.clock.Now().Format(time.RFC3339),
	}

	if err := s.scheduleRepo.Save(ctx, sched); err != nil {
		return nil, fmt.Errorf("failed to persist schedule: %w", err)
	}
	return sched, nil
}

// UpdateDailySchedulesStatus reconciles today's schedules with their
// linked orders.
func (s *ScheduleServiceImpl) UpdateDailySchedulesStatus(ctx context.Context) error {
	return s.sweep(ctx, s.clock.Now().Format(dayFormat), false)
}

// UpdateSchedulesStatusByDate reconciles the schedules of a given
// date, additionally reverting premature cancellations.
func (s *ScheduleServiceImpl) UpdateSchedulesStatusByDate(ctx context.Context, date string) error {
	return s.sweep(ctx, date, true)
}

func (s *ScheduleServiceImpl) sweep(ctx context.Context, date string, revertQuick bool) error {
	schedules, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	orderBySchedule := make(map[string]*models.ServiceOrder)
	for _, o := range orders {
		orderBySchedule[o.ScheduleID] = o
	}

	now := s.clock.Now()
	today := now.Format(dayFormat)
	currentTime := now.Format(sweepFormat)

	for _, sched := range schedules {
		if sched.Date != date {
			continue
		}

		orderStatus := ""
		if o := orderBySchedule[sched.ID]; o != nil {
			orderStatus = o.Status
		}

		// Past due: an earlier day entirely, or today with the end
		// time already behind the clock.
		pastDue := sched.Date < today || (sched.Date == today && sched.EndTime <= currentTime)

		next := schedule.DeriveStatus(schedule.CoherenceContext{
			Current:     sched.Status,
			OrderStatus: orderStatus,
			PastDue:     pastDue,
			RevertQuick: revertQuick,
		})
		if next == sched.Status {
			continue
		}
		if err := s.updater.UpdateScheduleStatus(ctx, sched.ID, next); err != nil {
			return err
		}
	}
	return nil
}
