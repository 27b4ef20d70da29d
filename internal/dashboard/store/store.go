package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// ConflictError reports a uniqueness violation naming the offending field
// (e.g. "email", "username", "slug"). It matches ErrAlreadyExists under
// errors.Is so callers that don't care about the field still catch it.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("store: %s already exists", e.Field)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Categories() Categories
	Tags() Tags
	Posts() Posts
	Projects() Projects
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn returns
	// an error and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and when resolving token subjects.
	// The email is matched exactly against the stored value; normalization
	// happens before persistence, never here.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByUsername is used for registration pre-checks.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ListUsers returns all users ordered by creation date (newest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Duplicate username/email surfaces as a *ConflictError.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetUserActive flips the is_active flag and bumps updated_at.
	SetUserActive(ctx context.Context, userID string, active bool) error
}

type Categories interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)

	// CreateCategory inserts a category; duplicate name/slug surfaces as a
	// *ConflictError.
	CreateCategory(ctx context.Context, c domain.Category) error

	UpdateCategory(ctx context.Context, c domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

type Tags interface {
	ListTags(ctx context.Context) ([]domain.Tag, error)
	GetTagByID(ctx context.Context, id string) (domain.Tag, error)
	CreateTag(ctx context.Context, t domain.Tag) error
	DeleteTag(ctx context.Context, id string) error
}

// PostFilter narrows ListPosts. Zero values mean "don't filter".
type PostFilter struct {
	Status     domain.PostStatus
	CategoryID string
	AuthorID   string
	TagSlug    string
	Limit      int
	Offset     int
}

type Posts interface {
	ListPosts(ctx context.Context, f PostFilter) ([]domain.Post, error)
	GetPostByID(ctx context.Context, id string) (domain.Post, error)

	// CreatePost inserts a post; duplicate slug surfaces as a *ConflictError.
	CreatePost(ctx context.Context, p domain.Post) error

	UpdatePost(ctx context.Context, p domain.Post) error
	DeletePost(ctx context.Context, id string) error

	// ReplacePostTags rewrites the post_tags rows for a post.
	ReplacePostTags(ctx context.Context, postID string, tagIDs []string) error

	// ListPostTags returns the tags attached to a post, ordered by name.
	ListPostTags(ctx context.Context, postID string) ([]domain.Tag, error)

	// IncrementViewCount bumps view_count by one.
	IncrementViewCount(ctx context.Context, id string) error
}

type Projects interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	GetProjectByID(ctx context.Context, id string) (domain.Project, error)
	CreateProject(ctx context.Context, p domain.Project) error
	UpdateProject(ctx context.Context, p domain.Project) error

	// DeleteProject cascades to tasks (per schema).
	DeleteProject(ctx context.Context, id string) error
}

// TaskFilter narrows ListTasks. Zero values mean "don't filter".
type TaskFilter struct {
	ProjectID string
	Status    domain.TaskStatus
}

type Tasks interface {
	ListTasks(ctx context.Context, f TaskFilter) ([]domain.Task, error)
	GetTaskByID(ctx context.Context, id string) (domain.Task, error)
	CreateTask(ctx context.Context, t domain.Task) error
	UpdateTask(ctx context.Context, t domain.Task) error
	DeleteTask(ctx context.Context, id string) error
}
