package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_AbsentNullValue(t *testing.T) {
	var patch TaskPatch
	err := json.Unmarshal([]byte(`{"description": null, "title": "Buy milk"}`), &patch)
	require.NoError(t, err)

	// Present with a value.
	assert.True(t, patch.Title.Set)
	assert.True(t, patch.Title.Valid)
	assert.Equal(t, "Buy milk", patch.Title.Value)

	// Present but explicitly null.
	assert.True(t, patch.Description.Set)
	assert.False(t, patch.Description.Valid)

	// Absent entirely.
	assert.False(t, patch.Status.Set)
	assert.False(t, patch.Priority.Set)
	assert.False(t, patch.DueDate.Set)
	assert.False(t, patch.CategoryID.Set)
}

func TestOptional_NumericValue(t *testing.T) {
	var patch TaskPatch
	err := json.Unmarshal([]byte(`{"category_id": 7}`), &patch)
	require.NoError(t, err)

	assert.True(t, patch.CategoryID.Set)
	assert.True(t, patch.CategoryID.Valid)
	assert.Equal(t, int64(7), patch.CategoryID.Value)
}

func TestTaskPatch_Empty(t *testing.T) {
	var patch TaskPatch
	require.NoError(t, json.Unmarshal([]byte(`{}`), &patch))
	assert.True(t, patch.Empty())

	require.NoError(t, json.Unmarshal([]byte(`{"status":"completed"}`), &patch))
	assert.False(t, patch.Empty())
}

func TestValidStatusAndPriority(t *testing.T) {
	for _, s := range []string{StatusPending, StatusInProgress, StatusCompleted} {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("done"))
	assert.False(t, ValidStatus(""))

	for _, p := range []string{PriorityLow, PriorityMedium, PriorityHigh} {
		assert.True(t, ValidPriority(p), p)
	}
	assert.False(t, ValidPriority("urgent"))
}
