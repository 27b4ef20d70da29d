package service

import (
	"context"
	"errors"
	"time"

	"github.com/yamatodev/dashboard/internal/dashboard/domain"
	"github.com/yamatodev/dashboard/internal/dashboard/store"
	"github.com/yamatodev/dashboard/pkg/idx"
)

var ErrValidation = errors.New("validation_failed")

type CategoryService struct {
	Store store.Store
}

// CategoryParams are the writable fields of a category.
type CategoryParams struct {
	Name        string
	Slug        string
	Description string
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.Store.Categories().ListCategories(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (domain.Category, error) {
	return s.Store.Categories().GetCategoryByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, p CategoryParams) (domain.Category, error) {
	if p.Name == "" {
		return domain.Category{}, ErrValidation
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}

	now := time.Now().UTC()
	cat := domain.Category{
		ID:          idx.New().String(),
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Categories().CreateCategory(ctx, cat); err != nil {
		return domain.Category{}, err
	}
	return cat, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, p CategoryParams) (domain.Category, error) {
	cat, err := s.Store.Categories().GetCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	if p.Name != "" {
		cat.Name = p.Name
	}
	if p.Slug != "" {
		cat.Slug = p.Slug
	}
	if p.Description != "" {
		cat.Description = p.Description
	}
	cat.UpdatedAt = time.Now().UTC()

	if err := s.Store.Categories().UpdateCategory(ctx, cat); err != nil {
		return domain.Category{}, err
	}
	return cat, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.Store.Categories().DeleteCategory(ctx, id)
}
