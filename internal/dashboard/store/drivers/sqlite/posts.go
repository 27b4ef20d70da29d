package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
)

type postsRepo struct {
	db db
}

const postColumns = `p.id, p.user_id, p.category_id, p.title, p.slug, p.content,
	p.excerpt, p.featured_image, p.status, p.published_at, p.view_count,
	p.created_at, p.updated_at`

func scanPost(row interface{ Scan(dest ...any) error }) (domain.Post, error) {
	var (
		p           domain.Post
		categoryID  sql.NullString
		publishedAt sql.NullTime
	)
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&categoryID,
		&p.Title,
		&p.Slug,
		&p.Content,
		&p.Excerpt,
		&p.FeaturedImage,
		&p.Status,
		&publishedAt,
		&p.ViewCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Post{}, err
	}
	p.CategoryID = mapNullStringPtr(categoryID)
	p.PublishedAt = mapNullTimePtr(publishedAt)
	return p, nil
}

func (r *postsRepo) ListPosts(ctx context.Context, f store.PostFilter) ([]domain.Post, error) {
	var (
		where []string
		args  []any
	)
	query := `SELECT ` + postColumns + ` FROM posts p`
	if f.TagSlug != "" {
		query += ` JOIN post_tags pt ON pt.post_id = p.id JOIN tags t ON t.id = pt.tag_id`
		where = append(where, `t.slug = ?`)
		args = append(args, f.TagSlug)
	}
	if f.Status != "" {
		where = append(where, `p.status = ?`)
		args = append(args, string(f.Status))
	}
	if f.CategoryID != "" {
		where = append(where, `p.category_id = ?`)
		args = append(args, f.CategoryID)
	}
	if f.AuthorID != "" {
		where = append(where, `p.user_id = ?`)
		args = append(args, f.AuthorID)
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY p.created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
		if f.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, f.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postsRepo) GetPostByID(ctx context.Context, id string) (domain.Post, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts p WHERE p.id = ?`, id)
	p, err := scanPost(row)
	if err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	return p, nil
}

func (r *postsRepo) CreatePost(ctx context.Context, p domain.Post) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (id, user_id, category_id, title, slug, content, excerpt,
		    featured_image, status, published_at, view_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, mapOptionalString(p.CategoryID), p.Title, p.Slug, p.Content,
		p.Excerpt, p.FeaturedImage, string(p.Status), mapOptionalTime(p.PublishedAt),
		p.ViewCount, p.CreatedAt, p.UpdatedAt)
	return mapConflict(err)
}

func (r *postsRepo) UpdatePost(ctx context.Context, p domain.Post) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET category_id = ?, title = ?, slug = ?, content = ?,
		    excerpt = ?, featured_image = ?, status = ?, published_at = ?, updated_at = ?
		 WHERE id = ?`,
		mapOptionalString(p.CategoryID), p.Title, p.Slug, p.Content, p.Excerpt,
		p.FeaturedImage, string(p.Status), mapOptionalTime(p.PublishedAt),
		p.UpdatedAt, p.ID)
	if err != nil {
		return mapConflict(err)
	}
	return requireRowAffected(res)
}

func (r *postsRepo) DeletePost(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *postsRepo) ReplacePostTags(ctx context.Context, postID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM post_tags WHERE post_id = ?`, postID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?)`, postID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func (r *postsRepo) ListPostTags(ctx context.Context, postID string) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.slug, t.created_at
		 FROM tags t
		 JOIN post_tags pt ON pt.tag_id = t.id
		 WHERE pt.post_id = ?
		 ORDER BY t.name ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *postsRepo) IncrementViewCount(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET view_count = view_count + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
