package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidTaskStatus(t *testing.T) {
	require.True(t, IsValidTaskStatus(TaskStatusPending))
	require.True(t, IsValidTaskStatus(TaskStatusInProgress))
	require.True(t, IsValidTaskStatus(TaskStatusCompleted))
	require.False(t, IsValidTaskStatus(TaskStatus("Archived")))
	require.False(t, IsValidTaskStatus(TaskStatus("")))
}

func TestIsValidTaskPriority(t *testing.T) {
	require.True(t, IsValidTaskPriority(TaskPriorityLow))
	require.True(t, IsValidTaskPriority(TaskPriorityHigh))
	require.False(t, IsValidTaskPriority(TaskPriority("Urgent")))
}

func TestIsFixedRole(t *testing.T) {
	require.True(t, IsFixedRole(RoleAdmin))
	require.True(t, IsFixedRole(RoleMember))
	require.True(t, IsFixedRole(RoleWarehouse))
	require.False(t, IsFixedRole(Role("QA")))
}

func TestCompletedTodoCount(t *testing.T) {
	task := Task{
		TodoChecklist: []TodoItem{
			{Completed: true},
			{Completed: false},
			{Completed: true},
		},
	}

	require.Equal(t, 2, task.CompletedTodoCount())
	require.Equal(t, 0, Task{}.CompletedTodoCount())
}
