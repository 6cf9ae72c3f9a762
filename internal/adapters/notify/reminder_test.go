package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/primary"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// stubScheduleService returns canned schedules for ListSchedules and
// panics on the operations reminders never use.
type stubScheduleService struct {
	schedules []*models.Schedule
}

func (s *stubScheduleService) ListSchedules(ctx context.Context, filters primary.ScheduleFilters) ([]*models.Schedule, error) {
	var out []*models.Schedule
	for _, sched := range s.schedules {
		if filters.Date != "" && sched.Date != filters.Date {
			continue
		}
		if filters.Status != "" && sched.Status != filters.Status {
			continue
		}
		out = append(out, sched)
	}
	return out, nil
}

func (s *stubScheduleService) GetSchedule(ctx context.Context, id string) (*models.Schedule, error) {
	panic("not used")
}

func (s *stubScheduleService) CreateSchedule(ctx context.Context, req primary.CreateScheduleRequest) (*models.Schedule, error) {
	panic("not used")
}

func (s *stubScheduleService) UpdateDailySchedulesStatus(ctx context.Context) error {
	panic("not used")
}

func (s *stubScheduleService) UpdateSchedulesStatusByDate(ctx context.Context, date string) error {
	panic("not used")
}

type recordingNotifier struct {
	titles []string
}

func (n *recordingNotifier) Notify(ctx context.Context, title, body string) error {
	n.titles = append(n.titles, title)
	return nil
}

func TestSweep_NotifiesUpcomingOnce(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.Local)
	svc := &stubScheduleService{schedules: []*models.Schedule{
		{ID: "1", Date: "2026-09-01", StartTime: "14:30", ClientName: "Padaria Central", Status: models.ScheduleStatusPending},
		{ID: "2", Date: "2026-09-01", StartTime: "17:00", ClientName: "Mercado Azul", Status: models.ScheduleStatusPending},
		{ID: "3", Date: "2026-09-01", StartTime: "13:00", ClientName: "Escola Norte", Status: models.ScheduleStatusPending},
		{ID: "4", Date: "2026-09-02", StartTime: "14:15", ClientName: "Outro Dia", Status: models.ScheduleStatusPending},
		{ID: "5", Date: "2026-09-01", StartTime: "14:45", ClientName: "Ja Atendido", Status: models.ScheduleStatusCompleted},
	}}
	notifier := &recordingNotifier{}
	s := NewReminderScheduler(svc, notifier, fixedClock{now: now}, time.Hour)

	if err := s.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(notifier.titles) != 1 {
		t.Fatalf("expected 1 reminder (only schedule 1 is inside the window), got %d", len(notifier.titles))
	}
	if notifier.titles[0] != "Upcoming visit at 14:30" {
		t.Errorf("unexpected reminder title %q", notifier.titles[0])
	}

	// Second sweep does not repeat the reminder
	if err := s.Sweep(context.Background()); err != nil {
		t.Fatalf("second Sweep failed: %v", err)
	}
	if len(notifier.titles) != 1 {
		t.Errorf("expected reminder deduplicated, got %d", len(notifier.titles))
	}
}

func TestSweep_SkipsUnparsableStartTime(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 0, 0, 0, time.Local)
	svc := &stubScheduleService{schedules: []*models.Schedule{
		{ID: "1", Date: "2026-09-01", StartTime: "soon", Status: models.ScheduleStatusPending},
	}}
	notifier := &recordingNotifier{}
	s := NewReminderScheduler(svc, notifier, fixedClock{now: now}, time.Hour)

	if err := s.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if len(notifier.titles) != 0 {
		t.Errorf("expected no reminders, got %v", notifier.titles)
	}
}

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf)

	if err := n.Notify(context.Background(), "Upcoming visit at 14:30", "Padaria Central starts in 30m"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Upcoming visit at 14:30") || !strings.Contains(out, "Padaria Central") {
		t.Errorf("unexpected output: %q", out)
	}
}
