package category

import (
	"context"
	"fmt"
	"strings"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Create(ctx context.Context, name string, description *string, parentID *uuid.UUID) (*Category, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *service) Create(ctx context.Context, name string, description *string, parentID *uuid.UUID) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidInput.With("field", "name")
	}

	slug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	c := &Category{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug,
		Description: description,
		ParentID:    parentID,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("category created",
		zap.String("category_id", c.ID.String()),
		zap.String("slug", c.Slug),
	)
	return c, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*Category, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidInput.With("field", "name")
		}
		c.Name = *input.Name
	}
	if input.Description != nil {
		c.Description = input.Description
	}
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, ErrSelfParent
		}
		c.ParentID = input.ParentID
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	slug := base

	for counter := 1; ; counter++ {
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
