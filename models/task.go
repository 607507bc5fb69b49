package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the four known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Status      TaskStatus         `json:"status" bson:"status"`
	ProjectID   primitive.ObjectID `json:"projectId" bson:"projectId"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	CompletedAt *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// TaskUpdate is the patch shape accepted on PUT. Nil fields are left
// untouched. The projectId is immutable and not part of the patch.
type TaskUpdate struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Status      *TaskStatus `json:"status"`
}

// ApplyStatus moves the task to status and keeps CompletedAt consistent:
// entering completed from any other status stamps now, leaving completed
// (or setting any non-completed status) clears the stamp. Setting completed
// while already completed keeps the original stamp.
func (t *Task) ApplyStatus(status TaskStatus, now time.Time) {
	if status == StatusCompleted {
		if t.Status != StatusCompleted {
			t.CompletedAt = &now
		}
	} else {
		t.CompletedAt = nil
	}
	t.Status = status
}
