package service

import (
	"context"
	"time"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
	"github.com/yamatodev/dashboard/pkg/idx"
)

type ProjectService struct {
	Store store.Store
}

// ProjectParams are the writable fields of a project. Pointer fields are
// "absent unless set" on update.
type ProjectParams struct {
	Name        string
	Description string
	Status      domain.ProjectStatus
	Priority    domain.Priority
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	Progress    *int
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.Store.Projects().ListProjects(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id string) (domain.Project, error) {
	return s.Store.Projects().GetProjectByID(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, userID string, p ProjectParams) (domain.Project, error) {
	if p.Name == "" {
		return domain.Project{}, ErrValidation
	}
	if p.Status == "" {
		p.Status = domain.ProjectStatusPlanning
	}
	if p.Priority == "" {
		p.Priority = domain.PriorityMedium
	}
	if !p.Status.Valid() || !p.Priority.Valid() {
		return domain.Project{}, ErrValidation
	}

	now := time.Now().UTC()
	proj := domain.Project{
		ID:          idx.New().String(),
		UserID:      userID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Priority:    p.Priority,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Progress != nil {
		proj.Progress = clampProgress(*p.Progress)
	}

	if err := s.Store.Projects().CreateProject(ctx, proj); err != nil {
		return domain.Project{}, err
	}
	return proj, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, p ProjectParams) (domain.Project, error) {
	proj, err := s.Store.Projects().GetProjectByID(ctx, id)
	if err != nil {
		return domain.Project{}, err
	}

	if p.Name != "" {
		proj.Name = p.Name
	}
	if p.Description != "" {
		proj.Description = p.Description
	}
	if p.Status != "" {
		if !p.Status.Valid() {
			return domain.Project{}, ErrValidation
		}
		proj.Status = p.Status
	}
	if p.Priority != "" {
		if !p.Priority.Valid() {
			return domain.Project{}, ErrValidation
		}
		proj.Priority = p.Priority
	}
	if p.StartDate != nil {
		proj.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		proj.EndDate = p.EndDate
	}
	if p.Budget != nil {
		proj.Budget = p.Budget
	}
	if p.Progress != nil {
		proj.Progress = clampProgress(*p.Progress)
	}
	proj.UpdatedAt = time.Now().UTC()

	if err := s.Store.Projects().UpdateProject(ctx, proj); err != nil {
		return domain.Project{}, err
	}
	return proj, nil
}

// Delete removes a project; its tasks go with it via FK cascade.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.Store.Projects().DeleteProject(ctx, id)
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
