package wishlist

import (
	"context"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Item, int, error)
	Clear(ctx context.Context, userID uuid.UUID) error
	Count(ctx context.Context, userID uuid.UUID) (int, error)

	// MoveToCart adds the saved product to the user's cart and, only if
	// that succeeds, drops it from the wishlist.
	MoveToCart(ctx context.Context, userID, productID uuid.UUID) (*cart.Cart, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
	cartSvc     cart.Service
}

func NewService(repo Repository, productRepo product.Repository, cartSvc cart.Service) Service {
	return &service{repo: repo, productRepo: productRepo, cartSvc: cartSvc}
}

// Add is idempotent: saving a product twice leaves one entry and succeeds.
func (s *service) Add(ctx context.Context, userID, productID uuid.UUID) error {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil || !p.IsPublished {
		return ErrProductNotFound
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return s.repo.Remove(ctx, userID, productID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Item, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, userID, page, limit)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Clear(ctx, userID)
}

func (s *service) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.Count(ctx, userID)
}

func (s *service) MoveToCart(ctx context.Context, userID, productID uuid.UUID) (*cart.Cart, error) {
	exists, err := s.repo.Exists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrItemNotFound.With("product_id", productID.String())
	}

	// The cart's own stock and availability checks apply; a failure here
	// leaves the wishlist entry in place.
	c, err := s.cartSvc.AddItem(ctx, cart.UserIdentity(userID), productID, 1)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("wishlist item moved to cart",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
	)
	return c, nil
}
