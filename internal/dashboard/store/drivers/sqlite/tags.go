package sqlite

import (
	"context"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
)

type tagsRepo struct {
	db db
}

const tagColumns = `id, name, slug, created_at`

func scanTag(row interface{ Scan(dest ...any) error }) (domain.Tag, error) {
	var t domain.Tag
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.CreatedAt,
	)
	return t, err
}

func (r *tagsRepo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
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

func (r *tagsRepo) GetTagByID(ctx context.Context, id string) (domain.Tag, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)
	t, err := scanTag(row)
	if err != nil {
		return domain.Tag{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tagsRepo) CreateTag(ctx context.Context, t domain.Tag) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tags (id, name, slug, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, t.Slug, t.CreatedAt)
	return mapConflict(err)
}

func (r *tagsRepo) DeleteTag(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
