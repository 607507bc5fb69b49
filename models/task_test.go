package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStatus_Valid(t *testing.T) {
	for _, s := range []TaskStatus{StatusTodo, StatusInProgress, StatusReview, StatusCompleted} {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}
	assert.False(t, TaskStatus("done").Valid())
	assert.False(t, TaskStatus("").Valid())
}

func TestApplyStatus_CompleteSetsTimestamp(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	task := Task{Status: StatusTodo}

	task.ApplyStatus(StatusCompleted, now)

	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)
	assert.Equal(t, StatusCompleted, task.Status)
}

func TestApplyStatus_LeaveCompletedClearsTimestamp(t *testing.T) {
	now := time.Now()
	task := Task{Status: StatusTodo}

	task.ApplyStatus(StatusCompleted, now)
	require.NotNil(t, task.CompletedAt)

	task.ApplyStatus(StatusTodo, now.Add(time.Minute))
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, StatusTodo, task.Status)
}

func TestApplyStatus_RecompleteStampsAgain(t *testing.T) {
	first := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	task := Task{Status: StatusTodo}

	task.ApplyStatus(StatusCompleted, first)
	task.ApplyStatus(StatusTodo, first.Add(time.Minute))
	task.ApplyStatus(StatusCompleted, second)

	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, second, *task.CompletedAt)
}

func TestApplyStatus_AlreadyCompletedKeepsStamp(t *testing.T) {
	first := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	task := Task{Status: StatusTodo}

	task.ApplyStatus(StatusCompleted, first)
	task.ApplyStatus(StatusCompleted, first.Add(time.Hour))

	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, first, *task.CompletedAt)
}

func TestApplyStatus_NonCompletedTransitions(t *testing.T) {
	task := Task{Status: StatusTodo}

	task.ApplyStatus(StatusInProgress, time.Now())
	assert.Equal(t, StatusInProgress, task.Status)
	assert.Nil(t, task.CompletedAt)

	task.ApplyStatus(StatusReview, time.Now())
	assert.Equal(t, StatusReview, task.Status)
	assert.Nil(t, task.CompletedAt)
}
