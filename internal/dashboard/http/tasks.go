package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/service"
	"github.com/yamatodev/dashboard/pkg/httpx"
	"github.com/yamatodev/dashboard/pkg/slogx"
)

type TasksHandler struct {
	TaskService *service.TaskService
}

type taskRequest struct {
	ProjectID      string     `json:"project_id"`
	AssignedTo     *string    `json:"assigned_to"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
}

func (req taskRequest) params() service.TaskParams {
	return service.TaskParams{
		ProjectID:      req.ProjectID,
		AssignedTo:     req.AssignedTo,
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.TaskStatus(req.Status),
		Priority:       domain.Priority(req.Priority),
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	}
}

// HandleList returns tasks, optionally filtered by project and status.
//
//	@Summary		List tasks
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			project_id	query	string	false	"Filter by project"
//	@Param			status		query	string	false	"Filter by status (todo, in_progress, review, done, blocked)"
//	@Success		200			{array}	TaskResponse
//	@Failure		401			{object}	httpx.APIError
//	@Router			/api/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	q := r.URL.Query()

	tasks, err := h.TaskService.List(ctx, q.Get("project_id"), domain.TaskStatus(q.Get("status")))
	if err != nil {
		writeCRUDError(w, log, "list tasks", err)
		return
	}

	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns one task.
//
//	@Summary		Get task
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Task ID"
//	@Success		200	{object}	TaskResponse
//	@Failure		404	{object}	httpx.APIError
//	@Router			/api/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	task, err := h.TaskService.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeCRUDError(w, log, "get task", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleCreate adds a task to a project.
//
//	@Summary		Create task
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		taskRequest	true	"Task"
//	@Success		201		{object}	TaskResponse
//	@Failure		400		{object}	httpx.APIError	"Missing title or unknown project"
//	@Router			/api/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.ErrUnauthorized.Write(w)
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	task, err := h.TaskService.Create(ctx, user.ID, req.params())
	if err != nil {
		writeCRUDError(w, log, "create task", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTaskResponse(task))
}

// HandleUpdate edits a task.
//
//	@Summary		Update task
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Task ID"
//	@Param			body	body		taskRequest	true	"Fields to update"
//	@Success		200		{object}	TaskResponse
//	@Failure		404		{object}	httpx.APIError
//	@Router			/api/tasks/{id} [put].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	task, err := h.TaskService.Update(ctx, r.PathValue("id"), req.params())
	if err != nil {
		writeCRUDError(w, log, "update task", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTaskResponse(task))
}

// HandleDelete removes a task.
//
//	@Summary		Delete task
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Task ID"
//	@Success		204
//	@Failure		404	{object}	httpx.APIError
//	@Router			/api/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.TaskService.Delete(ctx, r.PathValue("id")); err != nil {
		writeCRUDError(w, log, "delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
