package monitoring

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/taskflow/taskflow-be/internal/services"
)

// OverdueScanner periodically flags tasks whose due date has passed
// without completion, recording a task.overdue event and pushing it to
// the owner's live connections.
type OverdueScanner struct {
	taskSvc  services.TaskServiceProvider
	eventSvc services.EventServiceProvider
	notifier services.Notifier
	schedule cron.Schedule
	nextRun  time.Time
	ticker   *time.Ticker
	done     chan bool

	// Task ids already flagged in this process, so a task is announced
	// at most once per run of the service.
	flagged map[int64]bool
}

// NewOverdueScanner creates a scanner gated by the given cron
// expression.
func NewOverdueScanner(taskSvc services.TaskServiceProvider, eventSvc services.EventServiceProvider, notifier services.Notifier, cronSpec string) (*OverdueScanner, error) {
	schedule, err := cron.ParseStandard(cronSpec)
	if err != nil {
		return nil, fmt.Errorf("invalid overdue scan schedule: %w", err)
	}
	return &OverdueScanner{
		taskSvc:  taskSvc,
		eventSvc: eventSvc,
		notifier: notifier,
		schedule: schedule,
		nextRun:  schedule.Next(time.Now()),
		done:     make(chan bool),
		flagged:  make(map[int64]bool),
	}, nil
}

// Run starts the scanner's ticking loop.
func (s *OverdueScanner) Run() {
	log.Info().Time("next_run", s.nextRun).Msg("Starting overdue task scanner...")
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping overdue task scanner.")
			return
		case <-s.ticker.C:
			now := time.Now()
			if now.After(s.nextRun) {
				s.scan()
				s.nextRun = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the scanner.
func (s *OverdueScanner) Stop() {
	s.done <- true
}

func (s *OverdueScanner) scan() {
	tasks, err := s.taskSvc.GetOverdueTasks()
	if err != nil {
		log.Error().Err(err).Msg("Overdue scan failed to list tasks")
		return
	}

	for _, task := range tasks {
		if s.flagged[task.ID] {
			continue
		}
		s.flagged[task.ID] = true

		msg := fmt.Sprintf("Task '%s' is overdue.", task.Title)
		if err := s.eventSvc.CreateEvent("task.overdue", "warn", msg, task.UserID); err != nil {
			log.Warn().Err(err).Int64("task_id", task.ID).Msg("Failed to record overdue event")
			continue
		}
		if s.notifier != nil {
			s.notifier.NotifyUser(task.UserID, []byte(fmt.Sprintf(`{"action":"task.overdue","payload":{"taskId":%d,"message":%q}}`, task.ID, msg)))
		}
	}
}
