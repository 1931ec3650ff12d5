package models

import "time"

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#6B7280"

// Category represents a user-defined grouping for tasks.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // Display hex string, e.g. "#6B7280"
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
