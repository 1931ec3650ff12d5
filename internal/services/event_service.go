package services

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/taskflow/taskflow-be/internal/models"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(eventType, level, message string, userID int64) error
	GetRecentEvents(userID int64, limit int) ([]models.Event, error)
}

// EventService provides business logic for the per-user activity feed.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// CreateEvent logs a new event to the database.
func (s *EventService) CreateEvent(eventType, level, message string, userID int64) error {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		UserID:  userID,
	}

	_, err := s.db.Exec("INSERT INTO events (id, type, level, message, user_id) VALUES ($1, $2, $3, $4, $5)",
		event.ID, event.Type, event.Level, event.Message, event.UserID)
	return err
}

// GetRecentEvents retrieves the caller's most recent events.
func (s *EventService) GetRecentEvents(userID int64, limit int) ([]models.Event, error) {
	rows, err := s.db.Query(`SELECT id, type, level, message, user_id, created_at
		FROM events WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.UserID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// eventMessage encodes an activity event for the live push channel.
func eventMessage(eventType, message string) []byte {
	b, _ := json.Marshal(map[string]any{
		"action":  eventType,
		"payload": map[string]string{"message": message},
	})
	return b
}
