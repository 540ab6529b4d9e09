package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTask_Defaults(t *testing.T) {
	task := NewTask("Fix login", "desc", "p1", 42)

	require.NotEmpty(t, task.ID)
	require.Equal(t, StatusTodo, task.Status)
	require.Equal(t, TaskFeature, task.TaskType)
	require.Equal(t, PriorityMedium, task.Priority)
	require.Equal(t, 1.0, task.Effort)
	require.Equal(t, int64(42), task.CreatedBy)
	require.Equal(t, int64(42), task.AssignedTo)
	require.Nil(t, task.DueDate)
	require.Nil(t, task.CompletedAt)
}

func TestTask_SetStatus(t *testing.T) {
	task := NewTask("Fix login", "", "p1", 42)

	task.SetStatus(StatusDone)
	require.Equal(t, StatusDone, task.Status)
	require.NotNil(t, task.CompletedAt)

	completed := task.CompletedAt
	task.SetStatus(StatusDone)
	// Повторное завершение не двигает отметку
	require.Equal(t, completed, task.CompletedAt)

	task.SetStatus(StatusInProgress)
	require.Equal(t, StatusInProgress, task.Status)
	require.Nil(t, task.CompletedAt)
}

func TestParseTaskStatus(t *testing.T) {
	for _, s := range []string{"todo", "in-progress", "done"} {
		status, ok := ParseTaskStatus(s)
		require.True(t, ok, "status %q", s)
		require.Equal(t, TaskStatus(s), status)
	}

	for _, s := range []string{"", "Done", "cancelled"} {
		_, ok := ParseTaskStatus(s)
		require.False(t, ok, "status %q", s)
	}
}
