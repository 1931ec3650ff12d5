package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-be/internal/apperr"
	"github.com/taskflow/taskflow-be/internal/models"
)

func TestBuildTaskListQuery_NoFilters(t *testing.T) {
	query, args, err := buildTaskListQuery(1, TaskFilter{})
	require.NoError(t, err)

	assert.Equal(t, []any{int64(1)}, args)
	assert.Contains(t, query, "WHERE t.user_id = $1")
	assert.NotContains(t, query, "t.status =")
	assert.NotContains(t, query, "t.priority =")
	assert.NotContains(t, query, "ILIKE")

	// Ordering: dated before undated, due date ascending, then priority
	// tier, then newest first.
	idxNull := strings.Index(query, "(t.due_date IS NULL)")
	idxDue := strings.Index(query, "t.due_date ASC")
	idxPrio := strings.Index(query, "CASE t.priority")
	idxCreated := strings.Index(query, "t.created_at DESC")
	require.True(t, idxNull > 0 && idxDue > idxNull && idxPrio > idxDue && idxCreated > idxPrio,
		"unexpected ordering clause: %s", query)
	assert.Contains(t, query, "WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3")
}

func TestBuildTaskListQuery_AllMeansNoConstraint(t *testing.T) {
	withAll, argsAll, err := buildTaskListQuery(1, TaskFilter{Status: "all", Priority: "all", CategoryID: "all"})
	require.NoError(t, err)
	without, argsNone, err := buildTaskListQuery(1, TaskFilter{})
	require.NoError(t, err)

	assert.Equal(t, without, withAll)
	assert.Equal(t, argsNone, argsAll)
}

func TestBuildTaskListQuery_AllFiltersConjunctive(t *testing.T) {
	query, args, err := buildTaskListQuery(9, TaskFilter{
		Status:     "pending",
		Priority:   "high",
		CategoryID: "3",
		Search:     "milk",
	})
	require.NoError(t, err)

	assert.Contains(t, query, "AND t.status = $2")
	assert.Contains(t, query, "AND t.priority = $3")
	assert.Contains(t, query, "AND t.category_id = $4")
	assert.Contains(t, query, "AND (t.title ILIKE $5 OR t.description ILIKE $5)")
	assert.Equal(t, []any{int64(9), "pending", "high", int64(3), "%milk%"}, args)
}

func TestBuildTaskListQuery_InvalidFilters(t *testing.T) {
	_, _, err := buildTaskListQuery(1, TaskFilter{Status: "done"})
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok)

	_, _, err = buildTaskListQuery(1, TaskFilter{CategoryID: "abc"})
	_, ok = apperr.IsValidation(err)
	assert.True(t, ok)
}

func setString(v string) models.Optional[string] {
	return models.Optional[string]{Set: true, Valid: true, Value: v}
}

func setNull[T any]() models.Optional[T] {
	return models.Optional[T]{Set: true}
}

func TestBuildTaskUpdateQuery_Empty(t *testing.T) {
	_, _, err := buildTaskUpdateQuery(1, 1, models.TaskPatch{})
	msg, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "No fields to update", msg)
}

func TestBuildTaskUpdateQuery_CompleteStampsTimestamp(t *testing.T) {
	patch := models.TaskPatch{Status: setString("completed")}
	query, args, err := buildTaskUpdateQuery(5, 2, patch)
	require.NoError(t, err)

	assert.Contains(t, query, "status = $1")
	assert.Contains(t, query, "completed_at = NOW()")
	assert.Contains(t, query, "updated_at = NOW()")
	assert.Contains(t, query, "WHERE id = $2 AND user_id = $3")
	assert.Equal(t, []any{"completed", int64(5), int64(2)}, args)
}

func TestBuildTaskUpdateQuery_ReopenClearsTimestamp(t *testing.T) {
	for _, status := range []string{"pending", "in_progress"} {
		patch := models.TaskPatch{Status: setString(status)}
		query, _, err := buildTaskUpdateQuery(5, 2, patch)
		require.NoError(t, err)
		assert.Contains(t, query, "completed_at = NULL", status)
		assert.NotContains(t, query, "completed_at = NOW()", status)
	}
}

func TestBuildTaskUpdateQuery_ClearNullableFields(t *testing.T) {
	patch := models.TaskPatch{
		Description: setNull[string](),
		DueDate:     setNull[string](),
		CategoryID:  setNull[int64](),
	}
	query, args, err := buildTaskUpdateQuery(10, 3, patch)
	require.NoError(t, err)

	assert.Contains(t, query, "description = $1")
	assert.Contains(t, query, "due_date = $2")
	assert.Contains(t, query, "category_id = $3")
	assert.Equal(t, []any{nil, nil, nil, int64(10), int64(3)}, args)
}

func TestBuildTaskUpdateQuery_EmptyDescriptionIsKept(t *testing.T) {
	// Present-but-empty clears the text without going to NULL.
	patch := models.TaskPatch{Description: setString("")}
	_, args, err := buildTaskUpdateQuery(1, 1, patch)
	require.NoError(t, err)
	assert.Equal(t, "", args[0])
}

func TestBuildTaskUpdateQuery_TitleValidation(t *testing.T) {
	_, _, err := buildTaskUpdateQuery(1, 1, models.TaskPatch{Title: setString("   ")})
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok)

	_, _, err = buildTaskUpdateQuery(1, 1, models.TaskPatch{Title: setNull[string]()})
	_, ok = apperr.IsValidation(err)
	assert.True(t, ok)
}

func TestBuildTaskUpdateQuery_InvalidEnums(t *testing.T) {
	_, _, err := buildTaskUpdateQuery(1, 1, models.TaskPatch{Status: setString("done")})
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok)

	_, _, err = buildTaskUpdateQuery(1, 1, models.TaskPatch{Priority: setString("urgent")})
	_, ok = apperr.IsValidation(err)
	assert.True(t, ok)
}

func TestBuildTaskUpdateQuery_DueDate(t *testing.T) {
	patch := models.TaskPatch{DueDate: setString("2026-03-15")}
	_, args, err := buildTaskUpdateQuery(1, 1, patch)
	require.NoError(t, err)
	due, ok := args[0].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2026, due.Year())
	assert.Equal(t, time.March, due.Month())
	assert.Equal(t, 15, due.Day())

	_, _, err = buildTaskUpdateQuery(1, 1, models.TaskPatch{DueDate: setString("next tuesday")})
	_, ok2 := apperr.IsValidation(err)
	assert.True(t, ok2)

	// Empty string clears, mirroring the absent || null behavior.
	_, args, err = buildTaskUpdateQuery(1, 1, models.TaskPatch{DueDate: setString("")})
	require.NoError(t, err)
	assert.Nil(t, args[0])
}
