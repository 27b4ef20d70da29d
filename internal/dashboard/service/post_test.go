package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
)

func seedAuthor(t *testing.T, svc *AuthService) domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterParams{
		Username: "author",
		Email:    "author@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	return user
}

func TestPostCreateDefaultsToDraft(t *testing.T) {
	auth := newTestAuth(t)
	posts := &PostService{Store: auth.Store}
	author := seedAuthor(t, auth)
	ctx := context.Background()

	view, err := posts.Create(ctx, author.ID, PostParams{
		Title:   "Hello World",
		Content: "First post.",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PostStatusDraft, view.Post.Status)
	assert.Equal(t, "hello-world", view.Post.Slug)
	assert.Nil(t, view.Post.PublishedAt)
	assert.Equal(t, author.ID, view.Author.ID)
	assert.Empty(t, view.Tags)
}

func TestPostPublishSetsTimestampOnce(t *testing.T) {
	auth := newTestAuth(t)
	posts := &PostService{Store: auth.Store}
	author := seedAuthor(t, auth)
	ctx := context.Background()

	view, err := posts.Create(ctx, author.ID, PostParams{
		Title:   "Draft Post",
		Content: "Body.",
	})
	require.NoError(t, err)

	published, err := posts.Update(ctx, view.Post.ID, PostParams{
		Status: domain.PostStatusPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, published.Post.PublishedAt)
	first := *published.Post.PublishedAt

	// A later edit keeps the original publication timestamp.
	edited, err := posts.Update(ctx, view.Post.ID, PostParams{
		Content: "Edited body.",
		Status:  domain.PostStatusPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, edited.Post.PublishedAt)
	assert.Equal(t, first, *edited.Post.PublishedAt)
}

func TestPostGetIncrementsViewCount(t *testing.T) {
	auth := newTestAuth(t)
	posts := &PostService{Store: auth.Store}
	author := seedAuthor(t, auth)
	ctx := context.Background()

	view, err := posts.Create(ctx, author.ID, PostParams{
		Title:   "Counted",
		Content: "Body.",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.Post.ViewCount)

	got, err := posts.Get(ctx, view.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Post.ViewCount)

	got, err = posts.Get(ctx, view.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Post.ViewCount)
}

func TestPostTagsAndFilters(t *testing.T) {
	auth := newTestAuth(t)
	posts := &PostService{Store: auth.Store}
	tags := &TagService{Store: auth.Store}
	author := seedAuthor(t, auth)
	ctx := context.Background()

	goTag, err := tags.Create(ctx, "Go", "")
	require.NoError(t, err)
	assert.Equal(t, "go", goTag.Slug)

	webTag, err := tags.Create(ctx, "Web Dev", "")
	require.NoError(t, err)
	assert.Equal(t, "web-dev", webTag.Slug)

	tagged, err := posts.Create(ctx, author.ID, PostParams{
		Title:   "Tagged Post",
		Content: "Body.",
		Status:  domain.PostStatusPublished,
		TagIDs:  []string{goTag.ID, webTag.ID},
	})
	require.NoError(t, err)
	assert.Len(t, tagged.Tags, 2)

	_, err = posts.Create(ctx, author.ID, PostParams{
		Title:   "Plain Post",
		Content: "Body.",
		Status:  domain.PostStatusPublished,
	})
	require.NoError(t, err)

	byTag, err := posts.List(ctx, ListParams{TagSlug: "go"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, tagged.Post.ID, byTag[0].Post.ID)

	published, err := posts.List(ctx, ListParams{Status: domain.PostStatusPublished})
	require.NoError(t, err)
	assert.Len(t, published, 2)
}

func TestPostDuplicateSlugConflicts(t *testing.T) {
	auth := newTestAuth(t)
	posts := &PostService{Store: auth.Store}
	author := seedAuthor(t, auth)
	ctx := context.Background()

	_, err := posts.Create(ctx, author.ID, PostParams{Title: "Same Title", Content: "A."})
	require.NoError(t, err)

	_, err = posts.Create(ctx, author.ID, PostParams{Title: "Same Title", Content: "B."})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	var conflict *store.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "slug", conflict.Field)
}

func TestPostGetMissing(t *testing.T) {
	auth := newTestAuth(t)
	posts := &PostService{Store: auth.Store}

	_, err := posts.Get(context.Background(), "01NOTAREALID0000000000DEAD")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
