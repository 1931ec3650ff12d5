package services

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/taskflow/taskflow-be/internal/apperr"
	"github.com/taskflow/taskflow-be/internal/models"
)

// CategoryServiceProvider defines the interface for category services.
type CategoryServiceProvider interface {
	GetCategories(userID int64) ([]models.Category, error)
	CreateCategory(userID int64, name, color string) (models.Category, error)
}

// CategoryService provides business logic for category management.
type CategoryService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *sql.DB, events EventServiceProvider) *CategoryService {
	return &CategoryService{db: db, events: events}
}

// GetCategories returns all of the caller's categories, name ascending.
func (s *CategoryService) GetCategories(userID int64) ([]models.Category, error) {
	rows, err := s.db.Query(`SELECT id, name, color, user_id, created_at
		FROM categories WHERE user_id = $1 ORDER BY name ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.UserID, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateCategory creates a new category for the caller and returns the
// freshly read row.
func (s *CategoryService) CreateCategory(userID int64, name, color string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, apperr.Validation("Category name is required")
	}
	if color == "" {
		color = models.DefaultCategoryColor
	}

	var category models.Category
	err := s.db.QueryRow(`INSERT INTO categories (name, color, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, color, user_id, created_at`,
		name, color, userID).
		Scan(&category.ID, &category.Name, &category.Color, &category.UserID, &category.CreatedAt)
	if err != nil {
		return models.Category{}, err
	}

	if s.events != nil {
		s.events.CreateEvent("category.create", "info", fmt.Sprintf("Category '%s' created.", category.Name), userID)
	}
	return category, nil
}
