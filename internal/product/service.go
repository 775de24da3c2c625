package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-be/internal/cache"
	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListResult struct {
	Items []*Product `json:"items"`
	Total int        `json:"total"`
}

type Service interface {
	GetByID(ctx context.Context, id uuid.UUID, includeUnpublished bool) (*Product, error)
	GetBySlug(ctx context.Context, slug string, includeUnpublished bool) (*Product, error)
	List(ctx context.Context, opts ListOptions) (*ListResult, error)
	Create(ctx context.Context, input NewProductInput) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	cache *cache.Cache
}

func NewService(repo Repository, c *cache.Cache) Service {
	return &service{repo: repo, cache: c}
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID, includeUnpublished bool) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || (!p.IsPublished && !includeUnpublished) {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string, includeUnpublished bool) (*Product, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil || (!p.IsPublished && !includeUnpublished) {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)

	start := time.Now()

	/* ---------- INPUT NORMALIZATION ---------- */

	if opts.Page <= 0 {
		opts.Page = 1
	}

	if opts.Limit <= 0 {
		opts.Limit = 20
	} else if opts.Limit > 100 {
		opts.Limit = 100
	}

	// Only the public, published listing is cached; admin views always hit
	// the database.
	cacheable := opts.OnlyPublished
	cacheKey := listCacheKey(opts)

	if cacheable {
		var cached ListResult
		if s.cache.GetProductList(ctx, cacheKey, &cached) {
			log.Debug("product list served from cache", zap.String("key", cacheKey))
			return &cached, nil
		}
	}

	items, total, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	result := &ListResult{Items: items, Total: total}

	if cacheable {
		s.cache.SetProductList(ctx, cacheKey, result)
	}

	log.Info("product list success",
		zap.Int("count", len(items)),
		zap.Int("total", total),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (s *service) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput.With("field", "name")
	}
	if input.Price < 0 {
		return nil, ErrInvalidInput.With("field", "price")
	}
	if input.Stock < 0 {
		return nil, ErrInvalidInput.With("field", "stock")
	}
	if strings.TrimSpace(input.SKU) == "" {
		return nil, ErrInvalidInput.With("field", "sku")
	}

	slug, err := s.uniqueSlug(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slug,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		SKU:         input.SKU,
		ImageURL:    input.ImageURL,
		IsPublished: input.IsPublished,
		CategoryID:  input.CategoryID,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.cache.InvalidateProducts(ctx)

	logger.FromCtx(ctx).Info("product created",
		zap.String("product_id", p.ID.String()),
		zap.String("slug", p.Slug),
	)
	return p, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Product, error) {
	if patch.IsEmpty() {
		return nil, ErrInvalidInput.With("reason", "no fields to update")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, ErrInvalidInput.With("field", "name")
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, ErrInvalidInput.With("field", "price")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, ErrInvalidInput.With("field", "stock")
	}

	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateProducts(ctx)
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateProducts(ctx)
	return nil
}

// uniqueSlug appends -N until the slug is free.
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

func listCacheKey(opts ListOptions) string {
	var b strings.Builder
	if opts.CategoryID != nil {
		fmt.Fprintf(&b, "cat=%s;", opts.CategoryID)
	}
	if opts.Search != nil {
		fmt.Fprintf(&b, "q=%s;", *opts.Search)
	}
	if opts.MinPrice != nil {
		fmt.Fprintf(&b, "min=%v;", *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		fmt.Fprintf(&b, "max=%v;", *opts.MaxPrice)
	}
	if opts.InStock != nil {
		fmt.Fprintf(&b, "stock=%v;", *opts.InStock)
	}
	fmt.Fprintf(&b, "sort=%s.%s;page=%d;limit=%d", opts.SortBy, opts.SortOrder, opts.Page, opts.Limit)
	return b.String()
}
