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

type ProjectsHandler struct {
	ProjectService *service.ProjectService
}

type projectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      *float64   `json:"budget"`
	Progress    *int       `json:"progress"`
}

func (req projectRequest) params() service.ProjectParams {
	return service.ProjectParams{
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ProjectStatus(req.Status),
		Priority:    domain.Priority(req.Priority),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Budget:      req.Budget,
		Progress:    req.Progress,
	}
}

// HandleList returns all projects.
//
//	@Summary		List projects
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		ProjectResponse
//	@Failure		401	{object}	httpx.APIError
//	@Router			/api/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	projects, err := h.ProjectService.List(ctx)
	if err != nil {
		log.Error("list projects failed", "err", err)
		httpx.ErrServerError.Write(w)
		return
	}

	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns one project.
//
//	@Summary		Get project
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	ProjectResponse
//	@Failure		404	{object}	httpx.APIError
//	@Router			/api/projects/{id} [get].
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	proj, err := h.ProjectService.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeCRUDError(w, log, "get project", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProjectResponse(proj))
}

// HandleCreate starts a project owned by the caller.
//
//	@Summary		Create project
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		projectRequest	true	"Project"
//	@Success		201		{object}	ProjectResponse
//	@Failure		400		{object}	httpx.APIError
//	@Router			/api/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.ErrUnauthorized.Write(w)
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	proj, err := h.ProjectService.Create(ctx, user.ID, req.params())
	if err != nil {
		writeCRUDError(w, log, "create project", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toProjectResponse(proj))
}

// HandleUpdate edits a project.
//
//	@Summary		Update project
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Project ID"
//	@Param			body	body		projectRequest	true	"Fields to update"
//	@Success		200		{object}	ProjectResponse
//	@Failure		404		{object}	httpx.APIError
//	@Router			/api/projects/{id} [put].
func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	proj, err := h.ProjectService.Update(ctx, r.PathValue("id"), req.params())
	if err != nil {
		writeCRUDError(w, log, "update project", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProjectResponse(proj))
}

// HandleDelete removes a project and its tasks.
//
//	@Summary		Delete project
//	@Tags			Projects
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Project ID"
//	@Success		204
//	@Failure		404	{object}	httpx.APIError
//	@Router			/api/projects/{id} [delete].
func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.ProjectService.Delete(ctx, r.PathValue("id")); err != nil {
		writeCRUDError(w, log, "delete project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
