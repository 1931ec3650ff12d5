package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taskflow/taskflow-be/internal/apperr"
	"github.com/taskflow/taskflow-be/internal/models"
)

// TaskFilter holds the optional listing constraints. Empty or "all"
// values leave that dimension unconstrained.
type TaskFilter struct {
	Status     string
	Priority   string
	CategoryID string
	Search     string
}

const taskColumns = `t.id, t.title, t.description, t.status, t.priority, t.due_date,
		t.category_id, t.user_id, t.created_at, t.updated_at, t.completed_at,
		c.name AS category_name, c.color AS category_color`

// taskOrderBy surfaces dated tasks first (soonest due date on top),
// breaks ties by priority tier, then newest first. The dashboard
// summary depends on this exact ordering.
const taskOrderBy = ` ORDER BY
		(t.due_date IS NULL),
		t.due_date ASC,
		CASE t.priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 END,
		t.created_at DESC`

// buildTaskListQuery assembles the filtered, sorted listing statement.
// All supplied filters apply conjunctively.
func buildTaskListQuery(userID int64, f TaskFilter) (string, []any, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + taskColumns + `
		FROM tasks t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1`)
	args := []any{userID}

	if f.Status != "" && f.Status != "all" {
		if !models.ValidStatus(f.Status) {
			return "", nil, apperr.Validation("Invalid status filter")
		}
		args = append(args, f.Status)
		fmt.Fprintf(&sb, " AND t.status = $%d", len(args))
	}

	if f.Priority != "" && f.Priority != "all" {
		if !models.ValidPriority(f.Priority) {
			return "", nil, apperr.Validation("Invalid priority filter")
		}
		args = append(args, f.Priority)
		fmt.Fprintf(&sb, " AND t.priority = $%d", len(args))
	}

	if f.CategoryID != "" && f.CategoryID != "all" {
		catID, err := strconv.ParseInt(f.CategoryID, 10, 64)
		if err != nil {
			return "", nil, apperr.Validation("Invalid category filter")
		}
		args = append(args, catID)
		fmt.Fprintf(&sb, " AND t.category_id = $%d", len(args))
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		fmt.Fprintf(&sb, " AND (t.title ILIKE $%d OR t.description ILIKE $%d)", len(args), len(args))
	}

	sb.WriteString(taskOrderBy)
	return sb.String(), args, nil
}

// buildTaskUpdateQuery assembles a single conditional UPDATE from the
// fields present in the patch. The WHERE clause carries both id and
// owner so the ownership check and the mutation are one statement.
func buildTaskUpdateQuery(taskID, userID int64, patch models.TaskPatch) (string, []any, error) {
	if patch.Empty() {
		return "", nil, apperr.Validation("No fields to update")
	}

	var sets []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title.Set {
		title := strings.TrimSpace(patch.Title.Value)
		if !patch.Title.Valid || title == "" {
			return "", nil, apperr.Validation("Title cannot be empty")
		}
		set("title", title)
	}

	if patch.Description.Set {
		if patch.Description.Valid {
			set("description", strings.TrimSpace(patch.Description.Value))
		} else {
			set("description", nil)
		}
	}

	if patch.Status.Set {
		if !patch.Status.Valid || !models.ValidStatus(patch.Status.Value) {
			return "", nil, apperr.Validation("Invalid status")
		}
		set("status", patch.Status.Value)
		// completed_at tracks the transition in the same statement.
		if patch.Status.Value == models.StatusCompleted {
			sets = append(sets, "completed_at = NOW()")
		} else {
			sets = append(sets, "completed_at = NULL")
		}
	}

	if patch.Priority.Set {
		if !patch.Priority.Valid || !models.ValidPriority(patch.Priority.Value) {
			return "", nil, apperr.Validation("Invalid priority")
		}
		set("priority", patch.Priority.Value)
	}

	if patch.DueDate.Set {
		if patch.DueDate.Valid && patch.DueDate.Value != "" {
			due, err := parseDueDate(patch.DueDate.Value)
			if err != nil {
				return "", nil, err
			}
			set("due_date", due)
		} else {
			set("due_date", nil)
		}
	}

	if patch.CategoryID.Set {
		if patch.CategoryID.Valid {
			set("category_id", patch.CategoryID.Value)
		} else {
			set("category_id", nil)
		}
	}

	sets = append(sets, "updated_at = NOW()")

	args = append(args, taskID)
	idPos := len(args)
	args = append(args, userID)
	ownerPos := len(args)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(sets, ", "), idPos, ownerPos)
	return query, args, nil
}

func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.Validation("Invalid due date, expected YYYY-MM-DD")
}
