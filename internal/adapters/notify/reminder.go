// Package notify implements schedule reminders: a cron-driven sweep
// that surfaces upcoming visits through a Notifier.
package notify

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/primary"
	"github.com/example/safeprag/internal/ports/secondary"
)

const sweepSpec = "@every 5m"

// ReminderScheduler periodically scans today's pending schedules and
// notifies once per schedule when its start time falls inside the
// lead window.
type ReminderScheduler struct {
	schedules primary.ScheduleService
	notifier  secondary.Notifier
	clock     secondary.Clock
	lead      time.Duration

	cron *cron.Cron

	mu       sync.Mutex
	notified map[string]bool
}

// NewReminderScheduler creates a scheduler with the given lead window.
func NewReminderScheduler(
	schedules primary.ScheduleService,
	notifier secondary.Notifier,
	clock secondary.Clock,
	lead time.Duration,
) *ReminderScheduler {
	return &ReminderScheduler{
		schedules: schedules,
		notifier:  notifier,
		clock:     clock,
		lead:      lead,
		notified:  make(map[string]bool),
	}
}

// Start begins the periodic sweep. Stop must be called to release the
// cron runner.
func (s *ReminderScheduler) Start() error {
	if s.cron != nil {
		return fmt.Errorf("reminder scheduler already started")
	}
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(sweepSpec, func() {
		if err := s.Sweep(context.Background()); err != nil {
			log.Printf("warning: reminder sweep failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to register reminder sweep: %w", err)
	}
	s.cron.Start()
	return nil
}

// Stop halts the periodic sweep.
func (s *ReminderScheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}

// Sweep runs one reminder pass over today's pending schedules.
func (s *ReminderScheduler) Sweep(ctx context.Context) error {
	now := s.clock.Now()
	today := now.Format("2006-01-02")

	pending, err := s.schedules.ListSchedules(ctx, primary.ScheduleFilters{
		Date:   today,
		Status: models.ScheduleStatusPending,
	})
	if err != nil {
		return err
	}

	for _, sched := range pending {
		start, err := time.ParseInLocation("2006-01-02 15:04", sched.Date+" "+sched.StartTime, now.Location())
		if err != nil {
			log.Printf("warning: schedule %s has unparsable start time %q, skipped", sched.ID, sched.StartTime)
			continue
		}
		if start.Before(now) || start.After(now.Add(s.lead)) {
			continue
		}

		s.mu.Lock()
		seen := s.notified[sched.ID]
		if !seen {
			s.notified[sched.ID] = true
		}
		s.mu.Unlock()
		if seen {
			continue
		}

		title := fmt.Sprintf("Upcoming visit at %s", sched.StartTime)
		body := fmt.Sprintf("%s (%s) starts in %s", sched.ClientName, sched.ServiceType, start.Sub(now).Round(time.Minute))
		if err := s.notifier.Notify(ctx, title, body); err != nil {
			log.Printf("warning: reminder for schedule %s failed: %v", sched.ID, err)
		}
	}
	return nil
}
