package http

import (
	"encoding/json"
	"net/http"

	"github.com/yamatodev/dashboard/internal/dashboard/service"
	"github.com/yamatodev/dashboard/pkg/httpx"
	"github.com/yamatodev/dashboard/pkg/slogx"
)

type TagsHandler struct {
	TagService *service.TagService
}

type tagRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// HandleList returns all tags.
//
//	@Summary		List tags
//	@Tags			Blog
//	@Produce		json
//	@Success		200	{array}	TagResponse
//	@Router			/api/blog/tags [get].
func (h *TagsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	tags, err := h.TagService.List(ctx)
	if err != nil {
		log.Error("list tags failed", "err", err)
		httpx.ErrServerError.Write(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTagResponses(tags))
}

// HandleCreate adds a tag.
//
//	@Summary		Create tag
//	@Tags			Blog
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tagRequest	true	"Tag"
//	@Success		201		{object}	TagResponse
//	@Failure		409		{object}	httpx.APIError	"Name or slug already exists"
//	@Router			/api/blog/tags [post].
func (h *TagsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	tag, err := h.TagService.Create(ctx, req.Name, req.Slug)
	if err != nil {
		writeCRUDError(w, log, "create tag", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTagResponse(tag))
}

// HandleDelete removes a tag and detaches it from all posts.
//
//	@Summary		Delete tag
//	@Tags			Blog
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Tag ID"
//	@Success		204
//	@Failure		404	{object}	httpx.APIError
//	@Router			/api/blog/tags/{id} [delete].
func (h *TagsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.TagService.Delete(ctx, r.PathValue("id")); err != nil {
		writeCRUDError(w, log, "delete tag", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
