package cart

import (
	"context"
	"errors"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	Get(ctx context.Context, identity Identity) (*Cart, error)
	AddItem(ctx context.Context, identity Identity, productID uuid.UUID, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, identity Identity, productID uuid.UUID, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, identity Identity, productID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, identity Identity) (*Cart, error)
	MergeGuestCart(ctx context.Context, userID uuid.UUID, sessionID string) error
}

// service implements the Service interface
type service struct {
	repo        Repository
	productRepo product.Repository
}

// NewService creates a new cart service
func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

func (s *service) Get(ctx context.Context, identity Identity) (*Cart, error) {
	return s.resolve(ctx, identity)
}

// AddItem validates the product and stock, then increments an existing line
// or appends a new one with a fresh price snapshot. Stock is never reserved
// here; it is only checked.
func (s *service) AddItem(ctx context.Context, identity Identity, productID uuid.UUID, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if !p.IsPublished {
		return nil, ErrProductInactive.With("product_id", productID.String())
	}

	item, err := s.repo.GetItemByCartAndProduct(ctx, c.ID, productID)
	if err != nil {
		return nil, err
	}

	finalQty := quantity
	if item != nil {
		finalQty += item.Quantity
	}

	if finalQty > p.Stock {
		return nil, ErrInsufficientStock.
			With("product_id", productID.String()).
			With("requested", finalQty).
			With("available", p.Stock)
	}

	if item == nil {
		item = &CartItem{
			ID:              uuid.New(),
			CartID:          c.ID,
			ProductID:       p.ID,
			Quantity:        quantity,
			UnitPrice:       p.Price,
			ProductName:     p.Name,
			ProductImageURL: p.ImageURL,
		}
		err = s.repo.CreateItem(ctx, item)
	} else {
		err = s.repo.UpdateItemQuantity(ctx, item.ID, finalQty)
	}
	if err != nil {
		return nil, err
	}

	return s.reload(ctx, c)
}

// UpdateItem sets the absolute quantity of an existing line. The stock check
// runs against the new quantity, not a delta.
func (s *service) UpdateItem(ctx context.Context, identity Identity, productID uuid.UUID, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemByCartAndProduct(ctx, c.ID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound.With("product_id", productID.String())
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	if !p.IsPublished {
		return nil, ErrProductInactive.With("product_id", productID.String())
	}
	if quantity > p.Stock {
		return nil, ErrInsufficientStock.
			With("product_id", productID.String()).
			With("requested", quantity).
			With("available", p.Stock)
	}

	if err := s.repo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, err
	}

	return s.reload(ctx, c)
}

func (s *service) RemoveItem(ctx context.Context, identity Identity, productID uuid.UUID) (*Cart, error) {
	c, err := s.resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemByCartAndProduct(ctx, c.ID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound.With("product_id", productID.String())
	}

	if err := s.repo.DeleteItem(ctx, item.ID); err != nil {
		return nil, err
	}

	return s.reload(ctx, c)
}

func (s *service) Clear(ctx context.Context, identity Identity) (*Cart, error) {
	c, err := s.resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := s.repo.ClearItems(ctx, c.ID); err != nil {
		return nil, err
	}

	c.Items = nil
	return c, nil
}

// MergeGuestCart folds a guest session cart into the user's cart at login.
// It is a direct union: quantities are summed on conflict, no stock checks.
func (s *service) MergeGuestCart(ctx context.Context, userID uuid.UUID, sessionID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "MergeGuestCart"),
		zap.String("user_id", userID.String()),
	)

	guestCart, err := s.repo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	if guestCart == nil {
		return nil
	}

	userCart, err := s.resolve(ctx, UserIdentity(userID))
	if err != nil {
		return err
	}

	if err := s.repo.MergeCarts(ctx, userCart.ID, guestCart.ID); err != nil {
		log.Error("cart merge failed", zap.Error(err))
		return err
	}

	log.Info("guest cart merged",
		zap.String("guest_cart_id", guestCart.ID.String()),
		zap.String("user_cart_id", userCart.ID.String()),
	)
	return nil
}

// resolve finds or creates the cart for the identity. Concurrent first
// requests can race on the create; the unique index turns the loser into
// a duplicate error, which is retried as a lookup.
func (s *service) resolve(ctx context.Context, identity Identity) (*Cart, error) {
	if identity.UserID != nil {
		c, err := s.repo.GetByUserID(ctx, *identity.UserID)
		if err != nil || c != nil {
			return c, err
		}

		c = &Cart{ID: uuid.New(), UserID: identity.UserID}
		if err := s.repo.Create(ctx, c); err != nil {
			if errors.Is(err, ErrCartExists) {
				return s.repo.GetByUserID(ctx, *identity.UserID)
			}
			return nil, err
		}
		c.Items = []*CartItem{}
		return c, nil
	}

	if identity.SessionID == nil || *identity.SessionID == "" {
		return nil, ErrSessionRequired
	}

	c, err := s.repo.GetBySessionID(ctx, *identity.SessionID)
	if err != nil || c != nil {
		return c, err
	}

	c = &Cart{ID: uuid.New(), SessionID: identity.SessionID}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, ErrCartExists) {
			return s.repo.GetBySessionID(ctx, *identity.SessionID)
		}
		return nil, err
	}
	c.Items = []*CartItem{}
	return c, nil
}

func (s *service) reload(ctx context.Context, c *Cart) (*Cart, error) {
	items, err := s.repo.GetItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}
