package domain

import "time"

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusBlocked    TaskStatus = "blocked"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview,
		TaskStatusDone, TaskStatusBlocked:
		return true
	}
	return false
}

// Task belongs to a project. UserID is the creator; AssignedTo is nil until
// someone picks it up.
type Task struct {
	ID             string
	ProjectID      string
	UserID         string
	AssignedTo     *string
	Title          string
	Description    string
	Status         TaskStatus
	Priority       Priority
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
