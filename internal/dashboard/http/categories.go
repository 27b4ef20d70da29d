package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yamatodev/dashboard/internal/dashboard/service"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
	"github.com/yamatodev/dashboard/pkg/httpx"
	"github.com/yamatodev/dashboard/pkg/slogx"
)

type CategoriesHandler struct {
	CategoryService *service.CategoryService
}

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// HandleList returns all categories.
//
//	@Summary		List categories
//	@Tags			Blog
//	@Produce		json
//	@Success		200	{array}	CategoryResponse
//	@Router			/api/blog/categories [get].
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cats, err := h.CategoryService.List(ctx)
	if err != nil {
		log.Error("list categories failed", "err", err)
		httpx.ErrServerError.Write(w)
		return
	}

	out := make([]CategoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate adds a category.
//
//	@Summary		Create category
//	@Tags			Blog
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		categoryRequest	true	"Category"
//	@Success		201		{object}	CategoryResponse
//	@Failure		409		{object}	httpx.APIError	"Name or slug already exists"
//	@Router			/api/blog/categories [post].
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	cat, err := h.CategoryService.Create(ctx, service.CategoryParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		writeCRUDError(w, log, "create category", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toCategoryResponse(cat))
}

// HandleUpdate edits a category.
//
//	@Summary		Update category
//	@Tags			Blog
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Category ID"
//	@Param			body	body		categoryRequest	true	"Fields to update"
//	@Success		200		{object}	CategoryResponse
//	@Failure		404		{object}	httpx.APIError
//	@Router			/api/blog/categories/{id} [put].
func (h *CategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	cat, err := h.CategoryService.Update(ctx, r.PathValue("id"), service.CategoryParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		writeCRUDError(w, log, "update category", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(cat))
}

// HandleDelete removes a category. Posts in it become uncategorized.
//
//	@Summary		Delete category
//	@Tags			Blog
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Category ID"
//	@Success		204
//	@Failure		404	{object}	httpx.APIError
//	@Router			/api/blog/categories/{id} [delete].
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.CategoryService.Delete(ctx, r.PathValue("id")); err != nil {
		writeCRUDError(w, log, "delete category", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeCRUDError maps the common service/store failure modes onto API errors.
func writeCRUDError(w http.ResponseWriter, log interface {
	Error(msg string, args ...any)
}, op string, err error) {
	var conflict *store.ConflictError
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.ErrNotFound.Write(w)
	case errors.As(err, &conflict):
		httpx.Conflict(conflict.Field).Write(w)
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrProjectNotFound):
		httpx.ErrInvalidBody.Write(w)
	default:
		log.Error(op+" failed", "err", err)
		httpx.ErrServerError.Write(w)
	}
}
