package http

import (
	"time"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/service"
)

// Response shapes shared across handlers. Field names are stable API surface;
// renaming one is a breaking change for the frontend.

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func toTagResponse(t domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

func toTagResponses(tags []domain.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResponse(t))
	}
	return out
}

// PostAuthor is the trimmed author embedded in post responses; it never
// exposes the email of other users to unauthenticated readers.
type PostAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type PostResponse struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Slug          string            `json:"slug"`
	Content       string            `json:"content"`
	Excerpt       string            `json:"excerpt"`
	FeaturedImage string            `json:"featured_image"`
	Status        string            `json:"status"`
	PublishedAt   *time.Time        `json:"published_at"`
	ViewCount     int64             `json:"view_count"`
	Author        PostAuthor        `json:"author"`
	Category      *CategoryResponse `json:"category"`
	Tags          []TagResponse     `json:"tags"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func toPostResponse(v service.PostView) PostResponse {
	resp := PostResponse{
		ID:            v.Post.ID,
		Title:         v.Post.Title,
		Slug:          v.Post.Slug,
		Content:       v.Post.Content,
		Excerpt:       v.Post.Excerpt,
		FeaturedImage: v.Post.FeaturedImage,
		Status:        string(v.Post.Status),
		PublishedAt:   v.Post.PublishedAt,
		ViewCount:     v.Post.ViewCount,
		Author:        PostAuthor{ID: v.Author.ID, Username: v.Author.Username},
		Tags:          toTagResponses(v.Tags),
		CreatedAt:     v.Post.CreatedAt,
		UpdatedAt:     v.Post.UpdatedAt,
	}
	if v.Category != nil {
		cat := toCategoryResponse(*v.Category)
		resp.Category = &cat
	}
	return resp
}

type ProjectResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Budget      *float64   `json:"budget"`
	Progress    int        `json:"progress"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toProjectResponse(p domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		Priority:    string(p.Priority),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		Progress:    p.Progress,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type TaskResponse struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"project_id"`
	UserID         string     `json:"user_id"`
	AssignedTo     *string    `json:"assigned_to"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func toTaskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		ProjectID:      t.ProjectID,
		UserID:         t.UserID,
		AssignedTo:     t.AssignedTo,
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		DueDate:        t.DueDate,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
