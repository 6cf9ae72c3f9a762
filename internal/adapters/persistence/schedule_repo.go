package persistence

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/secondary"
)

// ScheduleRepository implements secondary.ScheduleRepository over the
// SCHEDULES key.
type ScheduleRepository struct {
	store secondary.KeyValueStore
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(store secondary.KeyValueStore) *ScheduleRepository {
	return &ScheduleRepository{store: store}
}

// GetAll retrieves the full schedule collection.
func (r *ScheduleRepository) GetAll(ctx context.Context) ([]*models.Schedule, error) {
	raw, ok, err := r.store.Get(ctx, secondary.KeySchedules)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var schedules []*models.Schedule
	if err := json.Unmarshal([]byte(raw), &schedules); err != nil {
		log.Printf("warning: corrupt schedule collection, treating as empty: %v", err)
		return nil, nil
	}
	return schedules, nil
}

// GetByID retrieves one schedule, or nil if absent.
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*models.Schedule, error) {
	schedules, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range schedules {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

// Save upserts a single schedule into the collection.
func (r *ScheduleRepository) Save(ctx context.Context, schedule *models.Schedule) error {
	schedules, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	found := false
	for i, s := range schedules {
		if s.ID == schedule.ID {
			schedules[i] = schedule
			found = true
			break
		}
	}
	if !found {
		schedules = append(schedules, schedule)
	}

	return r.ReplaceAll(ctx, schedules)
}

// ReplaceAll overwrites the whole collection.
func (r *ScheduleRepository) ReplaceAll(ctx context.Context, schedules []*models.Schedule) error {
	if schedules == nil {
		schedules = []*models.Schedule{}
	}
	data, err := json.Marshal(schedules)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, secondary.KeySchedules, string(data))
}
