package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/service"
	"github.com/yamatodev/dashboard/pkg/httpx"
	"github.com/yamatodev/dashboard/pkg/slogx"
)

type PostsHandler struct {
	PostService *service.PostService
}

type postRequest struct {
	CategoryID    *string  `json:"category_id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	FeaturedImage string   `json:"featured_image"`
	Status        string   `json:"status"`
	TagIDs        []string `json:"tag_ids"`
}

// HandleList returns posts matching the query filters.
//
//	@Summary		List posts
//	@Tags			Blog
//	@Produce		json
//	@Param			status		query	string	false	"Filter by status (draft, published, archived)"
//	@Param			category_id	query	string	false	"Filter by category"
//	@Param			author_id	query	string	false	"Filter by author"
//	@Param			tag			query	string	false	"Filter by tag slug"
//	@Param			limit		query	int		false	"Page size"
//	@Param			offset		query	int		false	"Page offset"
//	@Success		200			{array}	PostResponse
//	@Router			/api/blog/posts [get].
func (h *PostsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	views, err := h.PostService.List(ctx, service.ListParams{
		Status:     domain.PostStatus(q.Get("status")),
		CategoryID: q.Get("category_id"),
		AuthorID:   q.Get("author_id"),
		TagSlug:    q.Get("tag"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		log.Error("list posts failed", "err", err)
		httpx.ErrServerError.Write(w)
		return
	}

	out := make([]PostResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toPostResponse(v))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns one post and counts the view.
//
//	@Summary		Get post
//	@Tags			Blog
//	@Produce		json
//	@Param			id	path		string	true	"Post ID"
//	@Success		200	{object}	PostResponse
//	@Failure		404	{object}	httpx.APIError
//	@Router			/api/blog/posts/{id} [get].
func (h *PostsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	view, err := h.PostService.Get(ctx, r.PathValue("id"))
	if err != nil {
		writeCRUDError(w, log, "get post", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(view))
}

// HandleCreate publishes or drafts a post authored by the caller.
//
//	@Summary		Create post
//	@Tags			Blog
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		postRequest	true	"Post"
//	@Success		201		{object}	PostResponse
//	@Failure		409		{object}	httpx.APIError	"Slug already exists"
//	@Router			/api/blog/posts [post].
func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, ok := UserFromContext(ctx)
	if !ok {
		httpx.ErrUnauthorized.Write(w)
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	view, err := h.PostService.Create(ctx, user.ID, service.PostParams{
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Status:        domain.PostStatus(req.Status),
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		writeCRUDError(w, log, "create post", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toPostResponse(view))
}

// HandleUpdate edits a post.
//
//	@Summary		Update post
//	@Tags			Blog
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Post ID"
//	@Param			body	body		postRequest	true	"Fields to update"
//	@Success		200		{object}	PostResponse
//	@Failure		404		{object}	httpx.APIError
//	@Router			/api/blog/posts/{id} [put].
func (h *PostsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ErrInvalidBody.Write(w)
		return
	}

	view, err := h.PostService.Update(ctx, r.PathValue("id"), service.PostParams{
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Status:        domain.PostStatus(req.Status),
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		writeCRUDError(w, log, "update post", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPostResponse(view))
}

// HandleDelete removes a post.
//
//	@Summary		Delete post
//	@Tags			Blog
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Post ID"
//	@Success		204
//	@Failure		404	{object}	httpx.APIError
//	@Router			/api/blog/posts/{id} [delete].
func (h *PostsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.PostService.Delete(ctx, r.PathValue("id")); err != nil {
		writeCRUDError(w, log, "delete post", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
