package service

import (
	"context"
	"errors"
	"time"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
	"github.com/yamatodev/dashboard/pkg/idx"
)

// ErrProjectNotFound distinguishes a bad project reference on task creation
// from the task itself being missing.
var ErrProjectNotFound = errors.New("project_not_found")

type TaskService struct {
	Store store.Store
}

// TaskParams are the writable fields of a task.
type TaskParams struct {
	ProjectID      string
	AssignedTo     *string
	Title          string
	Description    string
	Status         domain.TaskStatus
	Priority       domain.Priority
	DueDate        *time.Time
	EstimatedHours *float64
	ActualHours    *float64
}

func (s *TaskService) List(ctx context.Context, projectID string, status domain.TaskStatus) ([]domain.Task, error) {
	if status != "" && !status.Valid() {
		return nil, ErrValidation
	}
	return s.Store.Tasks().ListTasks(ctx, store.TaskFilter{
		ProjectID: projectID,
		Status:    status,
	})
}

func (s *TaskService) Get(ctx context.Context, id string) (domain.Task, error) {
	return s.Store.Tasks().GetTaskByID(ctx, id)
}

func (s *TaskService) Create(ctx context.Context, userID string, p TaskParams) (domain.Task, error) {
	if p.Title == "" || p.ProjectID == "" {
		return domain.Task{}, ErrValidation
	}
	if p.Status == "" {
		p.Status = domain.TaskStatusTodo
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityMedium
	}
	if !p.Status.Valid() || !p.Priority.Valid() {
		return domain.Task{}, ErrValidation
	}

	// Reject dangling project references up front; FK errors read poorly.
	if _, err := s.Store.Projects().GetProjectByID(ctx, p.ProjectID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Task{}, ErrProjectNotFound
		}
		return domain.Task{}, err
	}

	now := time.Now().UTC()
	task := domain.Task{
		ID:             idx.New().String(),
		ProjectID:      p.ProjectID,
		UserID:         userID,
		AssignedTo:     p.AssignedTo,
		Title:          p.Title,
		Description:    p.Description,
		Status:         p.Status,
		Priority:       p.Priority,
		DueDate:        p.DueDate,
		EstimatedHours: p.EstimatedHours,
		ActualHours:    p.ActualHours,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Store.Tasks().CreateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, p TaskParams) (domain.Task, error) {
	task, err := s.Store.Tasks().GetTaskByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	if p.Title != "" {
		task.Title = p.Title
	}
	if p.Description != "" {
		task.Description = p.Description
	}
	if p.Status != "" {
		if !p.Status.Valid() {
			return domain.Task{}, ErrValidation
		}
		task.Status = p.Status
	}
	if p.Priority != "" {
		if !p.Priority.Valid() {
			return domain.Task{}, ErrValidation
		}
		task.Priority = p.Priority
	}
	if p.AssignedTo != nil {
		task.AssignedTo = p.AssignedTo
	}
	if p.DueDate != nil {
		task.DueDate = p.DueDate
	}
	if p.EstimatedHours != nil {
		task.EstimatedHours = p.EstimatedHours
	}
	if p.ActualHours != nil {
		task.ActualHours = p.ActualHours
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.Store.Tasks().UpdateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.Store.Tasks().DeleteTask(ctx, id)
}
