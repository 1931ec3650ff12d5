package services

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/taskflow/taskflow-be/internal/models"
)

// RecentUpdatesLimit caps the recent-activity portion of the
// notification summary.
const RecentUpdatesLimit = 5

// NotificationServiceProvider defines the interface for notification services.
type NotificationServiceProvider interface {
	GetSummary(userID int64) (models.NotificationSummary, error)
}

// NotificationService computes read-only notification aggregates.
type NotificationService struct {
	db *sql.DB
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(db *sql.DB) *NotificationService {
	return &NotificationService{db: db}
}

// GetSummary returns the caller's count of not-yet-completed tasks and
// the most recently updated ones.
func (s *NotificationService) GetSummary(userID int64) (models.NotificationSummary, error) {
	var summary models.NotificationSummary

	err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND status != 'completed'`, userID).
		Scan(&summary.UndoneCount)
	if err != nil {
		return models.NotificationSummary{}, err
	}

	updates, err := s.recentUpdates(userID, "updated_at")
	if err != nil {
		// Defensive fallback for stores missing the updated_at column.
		log.Warn().Err(err).Msg("Falling back to created_at for recent updates")
		updates, err = s.recentUpdates(userID, "created_at")
		if err != nil {
			return models.NotificationSummary{}, err
		}
	}
	summary.RecentUpdates = updates
	return summary, nil
}

func (s *NotificationService) recentUpdates(userID int64, orderColumn string) ([]models.TaskUpdate, error) {
	rows, err := s.db.Query(`SELECT t.id, t.title, t.status, t.`+orderColumn+` AS updated_at
		FROM tasks t
		WHERE t.user_id = $1
		ORDER BY t.`+orderColumn+` DESC
		LIMIT $2`, userID, RecentUpdatesLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []models.TaskUpdate
	for rows.Next() {
		var u models.TaskUpdate
		if err := rows.Scan(&u.ID, &u.Title, &u.Status, &u.UpdatedAt); err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}
