package service

import (
	"context"
	"errors"
	"time"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
	"github.com/yamatodev/dashboard/pkg/idx"
	"github.com/yamatodev/dashboard/pkg/slogx"
)

type PostService struct {
	Store store.Store
}

// PostView is a post joined with its author, category and tags, shaped for
// API responses.
type PostView struct {
	Post     domain.Post
	Author   domain.User
	Category *domain.Category
	Tags     []domain.Tag
}

// PostParams are the writable fields of a post. TagIDs replaces the whole tag
// set on create and update.
type PostParams struct {
	CategoryID    *string
	Title         string
	Content       string
	Excerpt       string
	FeaturedImage string
	Status        domain.PostStatus
	TagIDs        []string
}

// ListParams narrow a post listing.
type ListParams struct {
	Status     domain.PostStatus
	CategoryID string
	AuthorID   string
	TagSlug    string
	Limit      int
	Offset     int
}

// List returns posts matching the filter, each assembled into a PostView.
func (s *PostService) List(ctx context.Context, p ListParams) ([]PostView, error) {
	posts, err := s.Store.Posts().ListPosts(ctx, store.PostFilter{
		Status:     p.Status,
		CategoryID: p.CategoryID,
		AuthorID:   p.AuthorID,
		TagSlug:    p.TagSlug,
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return nil, err
	}

	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		view, err := s.assemble(ctx, s.Store, post)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Get fetches one post and records the view. The read and the counter bump
// share a transaction so concurrent reads never lose increments.
func (s *PostService) Get(ctx context.Context, id string) (PostView, error) {
	var view PostView
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		post, err := tx.Posts().GetPostByID(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Posts().IncrementViewCount(ctx, id); err != nil {
			return err
		}
		post.ViewCount++

		view, err = s.assemble(ctx, tx, post)
		return err
	})
	if err != nil {
		return PostView{}, err
	}
	return view, nil
}

// Create inserts a post authored by userID. Published posts get a publication
// timestamp immediately.
func (s *PostService) Create(ctx context.Context, userID string, p PostParams) (PostView, error) {
	log := slogx.FromContext(ctx)

	if p.Title == "" || p.Content == "" {
		return PostView{}, ErrValidation
	}
	if p.Status == "" {
		p.Status = domain.PostStatusDraft
	}
	if !p.Status.Valid() {
		return PostView{}, ErrValidation
	}

	now := time.Now().UTC()
	post := domain.Post{
		ID:            idx.New().String(),
		UserID:        userID,
		CategoryID:    p.CategoryID,
		Title:         p.Title,
		Slug:          Slugify(p.Title),
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		Status:        p.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if post.Status == domain.PostStatusPublished {
		post.PublishedAt = &now
	}

	var view PostView
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Posts().CreatePost(ctx, post); err != nil {
			return err
		}
		if len(p.TagIDs) > 0 {
			if err := tx.Posts().ReplacePostTags(ctx, post.ID, p.TagIDs); err != nil {
				return err
			}
		}
		var err error
		view, err = s.assemble(ctx, tx, post)
		return err
	})
	if err != nil {
		return PostView{}, err
	}

	log.Info("post created", "post_id", post.ID, "user_id", userID)
	return view, nil
}

// Update applies non-zero fields of p to an existing post. Transitioning into
// published sets the publication timestamp once; later edits keep it.
func (s *PostService) Update(ctx context.Context, id string, p PostParams) (PostView, error) {
	var view PostView
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		post, err := tx.Posts().GetPostByID(ctx, id)
		if err != nil {
			return err
		}

		if p.Title != "" {
			post.Title = p.Title
			post.Slug = Slugify(p.Title)
		}
		if p.Content != "" {
			post.Content = p.Content
		}
		if p.Excerpt != "" {
			post.Excerpt = p.Excerpt
		}
		if p.FeaturedImage != "" {
			post.FeaturedImage = p.FeaturedImage
		}
		if p.CategoryID != nil {
			post.CategoryID = p.CategoryID
		}
		if p.Status != "" {
			if !p.Status.Valid() {
				return ErrValidation
			}
			if p.Status == domain.PostStatusPublished && post.PublishedAt == nil {
				now := time.Now().UTC()
				post.PublishedAt = &now
			}
			post.Status = p.Status
		}
		post.UpdatedAt = time.Now().UTC()

		if err := tx.Posts().UpdatePost(ctx, post); err != nil {
			return err
		}
		if p.TagIDs != nil {
			if err := tx.Posts().ReplacePostTags(ctx, post.ID, p.TagIDs); err != nil {
				return err
			}
		}
		view, err = s.assemble(ctx, tx, post)
		return err
	})
	if err != nil {
		return PostView{}, err
	}
	return view, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.Store.Posts().DeletePost(ctx, id)
}

// assemble joins a post with its author, category and tags. It works against
// either the root store or a transaction.
func (s *PostService) assemble(ctx context.Context, st store.Store, post domain.Post) (PostView, error) {
	author, err := st.Users().GetUserByID(ctx, post.UserID)
	if err != nil {
		return PostView{}, err
	}

	var category *domain.Category
	if post.CategoryID != nil {
		cat, err := st.Categories().GetCategoryByID(ctx, *post.CategoryID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return PostView{}, err
		}
		if err == nil {
			category = &cat
		}
	}

	tags, err := st.Posts().ListPostTags(ctx, post.ID)
	if err != nil {
		return PostView{}, err
	}

	return PostView{
		Post:     post,
		Author:   author,
		Category: category,
		Tags:     tags,
	}, nil
}
