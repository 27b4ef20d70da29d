package domain

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// Valid reports whether s is a known post status.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

type Category struct {
	ID          string
	Name        string // unique
	Slug        string // unique
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Tag struct {
	ID        string
	Name      string // unique
	Slug      string // unique
	CreatedAt time.Time
}

// Post is a blog entry. CategoryID is nil for uncategorized posts; tags are
// attached through the post_tags join table and fetched explicitly.
type Post struct {
	ID            string
	UserID        string
	CategoryID    *string
	Title         string
	Slug          string // unique
	Content       string
	Excerpt       string
	FeaturedImage string
	Status        PostStatus
	PublishedAt   *time.Time
	ViewCount     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
