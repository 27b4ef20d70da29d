package service

import (
	"context"
	"time"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
	"github.com/yamatodev/dashboard/pkg/idx"
)

type TagService struct {
	Store store.Store
}

func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.Store.Tags().ListTags(ctx)
}

func (s *TagService) Create(ctx context.Context, name, slug string) (domain.Tag, error) {
	if name == "" {
		return domain.Tag{}, ErrValidation
	}
	if slug == "" {
		slug = Slugify(name)
	}

	tag := domain.Tag{
		ID:        idx.New().String(),
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Tags().CreateTag(ctx, tag); err != nil {
		return domain.Tag{}, err
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, id string) error {
	return s.Store.Tags().DeleteTag(ctx, id)
}
