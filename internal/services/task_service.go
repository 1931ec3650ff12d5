package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/taskflow/taskflow-be/internal/apperr"
	"github.com/taskflow/taskflow-be/internal/models"
)

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	GetTasks(userID int64, filter TaskFilter) ([]models.Task, error)
	GetTaskByID(taskID, userID int64) (models.Task, error)
	CreateTask(userID int64, input models.NewTaskInput) (models.Task, error)
	UpdateTask(taskID, userID int64, patch models.TaskPatch) (models.Task, error)
	DeleteTask(taskID, userID int64) error
	GetDashboardStats(userID int64) (models.DashboardStats, error)
	GetOverdueTasks() ([]models.Task, error)
}

// Notifier pushes a message to all live connections of a single user.
type Notifier interface {
	NotifyUser(userID int64, message []byte)
}

// TaskService provides business logic for task management.
type TaskService struct {
	db       *sql.DB
	events   EventServiceProvider
	notifier Notifier
}

// NewTaskService creates a new TaskService. notifier may be nil when no
// live push channel is wired up.
func NewTaskService(db *sql.DB, events EventServiceProvider, notifier Notifier) *TaskService {
	return &TaskService{db: db, events: events, notifier: notifier}
}

// GetTasks returns the caller's tasks matching the filter, joined with
// category display fields, in the dashboard ordering.
func (s *TaskService) GetTasks(userID int64, filter TaskFilter) ([]models.Task, error) {
	query, args, err := buildTaskListQuery(userID, filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// GetTaskByID retrieves a single task owned by userID. Tasks owned by
// other users surface as not found.
func (s *TaskService) GetTaskByID(taskID, userID int64) (models.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+`
		FROM tasks t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1 AND t.user_id = $2`, taskID, userID)

	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Task{}, apperr.ErrNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// CreateTask inserts a new pending task and returns the freshly read,
// joined row.
func (s *TaskService) CreateTask(userID int64, input models.NewTaskInput) (models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Task{}, apperr.Validation("Title is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return models.Task{}, apperr.Validation("Invalid priority")
	}

	var description any
	if input.Description != nil {
		description = strings.TrimSpace(*input.Description)
	}

	var dueDate any
	if input.DueDate != "" {
		due, err := parseDueDate(input.DueDate)
		if err != nil {
			return models.Task{}, err
		}
		dueDate = due
	}

	var taskID int64
	err := s.db.QueryRow(`INSERT INTO tasks (title, description, status, priority, due_date, category_id, user_id)
		VALUES ($1, $2, 'pending', $3, $4, $5, $6)
		RETURNING id`,
		title, description, priority, dueDate, input.CategoryID, userID).Scan(&taskID)
	if err != nil {
		return models.Task{}, err
	}

	task, err := s.GetTaskByID(taskID, userID)
	if err != nil {
		return models.Task{}, err
	}

	s.recordEvent(userID, "task.create", "info", fmt.Sprintf("Task '%s' created.", task.Title))
	return task, nil
}

// UpdateTask applies a sparse patch to a task and returns the freshly
// read row. The update is one conditional statement, so ownership and
// mutation cannot race.
func (s *TaskService) UpdateTask(taskID, userID int64, patch models.TaskPatch) (models.Task, error) {
	query, args, err := buildTaskUpdateQuery(taskID, userID, patch)
	if err != nil {
		return models.Task{}, err
	}

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return models.Task{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.Task{}, err
	}
	if affected == 0 {
		return models.Task{}, apperr.ErrNotFound
	}

	task, err := s.GetTaskByID(taskID, userID)
	if err != nil {
		return models.Task{}, err
	}

	eventType := "task.update"
	if patch.Status.Set && patch.Status.Value == models.StatusCompleted {
		eventType = "task.complete"
	}
	s.recordEvent(userID, eventType, "info", fmt.Sprintf("Task '%s' updated.", task.Title))
	return task, nil
}

// DeleteTask permanently removes a task owned by userID.
func (s *TaskService) DeleteTask(taskID, userID int64) error {
	result, err := s.db.Exec("DELETE FROM tasks WHERE id = $1 AND user_id = $2", taskID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.ErrNotFound
	}

	s.recordEvent(userID, "task.delete", "info", fmt.Sprintf("Task %d deleted.", taskID))
	return nil
}

// GetDashboardStats computes the aggregate counts for the dashboard in
// a single statement.
func (s *TaskService) GetDashboardStats(userID int64) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := s.db.QueryRow(`SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = 'completed'),
		COUNT(*) FILTER (WHERE status = 'pending'),
		COUNT(*) FILTER (WHERE status = 'in_progress'),
		COUNT(*) FILTER (WHERE due_date < CURRENT_DATE AND status != 'completed')
		FROM tasks WHERE user_id = $1`, userID).
		Scan(&stats.Total, &stats.Completed, &stats.Pending, &stats.InProgress, &stats.Overdue)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}

// GetOverdueTasks returns all tasks across users whose due date has
// passed without completion. Used by the background scanner.
func (s *TaskService) GetOverdueTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + `
		FROM tasks t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.due_date < CURRENT_DATE AND t.status != 'completed'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTasks(rows)
}

// recordEvent appends to the owner's activity feed and pushes a live
// notification. Feed failures are logged, never propagated: the
// mutation they describe has already succeeded.
func (s *TaskService) recordEvent(userID int64, eventType, level, message string) {
	if s.events != nil {
		if err := s.events.CreateEvent(eventType, level, message, userID); err != nil {
			log.Warn().Err(err).Str("type", eventType).Msg("Failed to record activity event")
		}
	}
	if s.notifier != nil {
		s.notifier.NotifyUser(userID, eventMessage(eventType, message))
	}
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (models.Task, error) {
	var task models.Task
	err := row.Scan(&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.DueDate, &task.CategoryID, &task.UserID, &task.CreatedAt, &task.UpdatedAt,
		&task.CompletedAt, &task.CategoryName, &task.CategoryColor)
	return task, err
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
