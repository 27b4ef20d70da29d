package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
)

func TestProjectLifecycle(t *testing.T) {
	auth := newTestAuth(t)
	projects := &ProjectService{Store: auth.Store}
	owner := seedAuthor(t, auth)
	ctx := context.Background()

	proj, err := projects.Create(ctx, owner.ID, ProjectParams{Name: "Website Redesign"})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusPlanning, proj.Status)
	assert.Equal(t, domain.PriorityMedium, proj.Priority)
	assert.Equal(t, 0, proj.Progress)

	progress := 150
	updated, err := projects.Update(ctx, proj.ID, ProjectParams{
		Status:   domain.ProjectStatusActive,
		Progress: &progress,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusActive, updated.Status)
	assert.Equal(t, 100, updated.Progress, "progress is clamped to 100")

	_, err = projects.Update(ctx, proj.ID, ProjectParams{Status: "bogus"})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, projects.Delete(ctx, proj.ID))
	_, err = projects.Get(ctx, proj.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTaskLifecycle(t *testing.T) {
	auth := newTestAuth(t)
	projects := &ProjectService{Store: auth.Store}
	tasks := &TaskService{Store: auth.Store}
	owner := seedAuthor(t, auth)
	ctx := context.Background()

	proj, err := projects.Create(ctx, owner.ID, ProjectParams{Name: "Backend"})
	require.NoError(t, err)

	task, err := tasks.Create(ctx, owner.ID, TaskParams{
		ProjectID: proj.ID,
		Title:     "Wire up storage",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Nil(t, task.AssignedTo)

	updated, err := tasks.Update(ctx, task.ID, TaskParams{
		Status:     domain.TaskStatusInProgress,
		AssignedTo: &owner.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusInProgress, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, owner.ID, *updated.AssignedTo)
}

func TestTaskCreateRequiresProject(t *testing.T) {
	auth := newTestAuth(t)
	tasks := &TaskService{Store: auth.Store}
	owner := seedAuthor(t, auth)

	_, err := tasks.Create(context.Background(), owner.ID, TaskParams{
		ProjectID: "01NOTAREALID0000000000DEAD",
		Title:     "Orphan",
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestTaskFilters(t *testing.T) {
	auth := newTestAuth(t)
	projects := &ProjectService{Store: auth.Store}
	tasks := &TaskService{Store: auth.Store}
	owner := seedAuthor(t, auth)
	ctx := context.Background()

	projA, err := projects.Create(ctx, owner.ID, ProjectParams{Name: "A"})
	require.NoError(t, err)
	projB, err := projects.Create(ctx, owner.ID, ProjectParams{Name: "B"})
	require.NoError(t, err)

	_, err = tasks.Create(ctx, owner.ID, TaskParams{ProjectID: projA.ID, Title: "a1"})
	require.NoError(t, err)
	done, err := tasks.Create(ctx, owner.ID, TaskParams{
		ProjectID: projA.ID, Title: "a2", Status: domain.TaskStatusDone,
	})
	require.NoError(t, err)
	_, err = tasks.Create(ctx, owner.ID, TaskParams{ProjectID: projB.ID, Title: "b1"})
	require.NoError(t, err)

	inA, err := tasks.List(ctx, projA.ID, "")
	require.NoError(t, err)
	assert.Len(t, inA, 2)

	doneInA, err := tasks.List(ctx, projA.ID, domain.TaskStatusDone)
	require.NoError(t, err)
	require.Len(t, doneInA, 1)
	assert.Equal(t, done.ID, doneInA[0].ID)

	all, err := tasks.List(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Deleting the project cascades to its tasks.
	require.NoError(t, projects.Delete(ctx, projA.ID))
	remaining, err := tasks.List(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestCategoryCRUD(t *testing.T) {
	auth := newTestAuth(t)
	cats := &CategoryService{Store: auth.Store}
	ctx := context.Background()

	cat, err := cats.Create(ctx, CategoryParams{Name: "Engineering Notes"})
	require.NoError(t, err)
	assert.Equal(t, "engineering-notes", cat.Slug)

	_, err = cats.Create(ctx, CategoryParams{Name: "Engineering Notes"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	updated, err := cats.Update(ctx, cat.ID, CategoryParams{Description: "Long form writeups"})
	require.NoError(t, err)
	assert.Equal(t, "Long form writeups", updated.Description)
	assert.Equal(t, cat.Name, updated.Name)

	require.NoError(t, cats.Delete(ctx, cat.ID))
	_, err = cats.Get(ctx, cat.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
