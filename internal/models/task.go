package models

import "time"

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is one of the known task priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a single task, joined with its category's display
// fields when one is assigned.
type Task struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	DueDate       *time.Time `json:"due_date"`
	CategoryID    *int64     `json:"category_id"`
	UserID        int64      `json:"user_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	CategoryName  *string    `json:"category_name"`
	CategoryColor *string    `json:"category_color"`
}

// NewTaskInput carries the fields accepted at task creation. Status is
// not part of it: new tasks always start out pending.
type NewTaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	DueDate     string  `json:"due_date"`
	CategoryID  *int64  `json:"category_id"`
}

// TaskPatch is a sparse update to a task. Each field distinguishes
// "absent" from "explicitly null" so callers can clear a nullable
// column without touching the others.
type TaskPatch struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Status      Optional[string] `json:"status"`
	Priority    Optional[string] `json:"priority"`
	DueDate     Optional[string] `json:"due_date"`
	CategoryID  Optional[int64]  `json:"category_id"`
}

// Empty reports whether the patch carries no field at all.
func (p TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set &&
		!p.Priority.Set && !p.DueDate.Set && !p.CategoryID.Set
}

// NotificationSummary is the payload of the notifications endpoint.
type NotificationSummary struct {
	UndoneCount   int          `json:"undoneCount"`
	RecentUpdates []TaskUpdate `json:"recentUpdates"`
}

// TaskUpdate is a compact view of a recently touched task.
type TaskUpdate struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DashboardStats holds the aggregate counts shown on the dashboard.
type DashboardStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
}
