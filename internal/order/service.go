package order

import (
	"context"
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"
	"storefront-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, userID, shippingAddressID, billingAddressID uuid.UUID) (*Order, error)
	Get(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, isAdmin bool) (*Order, error)
	List(ctx context.Context, opts ListOptions) ([]*Order, int, error)
	Cancel(ctx context.Context, userID, orderID uuid.UUID) (*Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, to Status) (*Order, error)
}

type service struct {
	repo        Repository
	cartRepo    cart.Repository
	productRepo product.Repository
	addressRepo address.Repository
}

func NewService(repo Repository, cartRepo cart.Repository, productRepo product.Repository, addressRepo address.Repository) Service {
	return &service{
		repo:        repo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
	}
}

// Checkout freezes the user's cart into an order. Product state is
// re-validated here, but the guarded decrement inside CreateOrderTx is the
// authoritative stock check; a concurrent checkout losing the race fails
// there and nothing is committed.
func (s *service) Checkout(ctx context.Context, userID, shippingAddressID, billingAddressID uuid.UUID) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.String("user_id", userID.String()),
	)

	c, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil || len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := s.checkAddress(ctx, userID, shippingAddressID); err != nil {
		return nil, err
	}
	if billingAddressID != shippingAddressID {
		if err := s.checkAddress(ctx, userID, billingAddressID); err != nil {
			return nil, err
		}
	}

	items := make([]*OrderItem, 0, len(c.Items))
	var total float64
	for _, line := range c.Items {
		// The product row is consulted only for availability; the charged
		// price and display fields are the cart line's frozen snapshot.
		p, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.IsPublished {
			return nil, cart.ErrProductInactive.With("product_id", line.ProductID.String())
		}
		if line.Quantity > p.Stock {
			return nil, ErrInsufficientStock.
				With("product_id", line.ProductID.String()).
				With("requested", line.Quantity).
				With("available", p.Stock)
		}

		items = append(items, &OrderItem{
			ID:              uuid.New(),
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			ProductName:     line.ProductName,
			ProductImageURL: line.ProductImageURL,
		})
		total += line.UnitPrice * float64(line.Quantity)
	}

	orderNumber, err := s.uniqueOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:                uuid.New(),
		UserID:            userID,
		OrderNumber:       orderNumber,
		Status:            StatusPending,
		PaymentStatus:     PaymentPending,
		TotalAmount:       total,
		ShippingAddressID: shippingAddressID,
		BillingAddressID:  billingAddressID,
		Items:             items,
	}
	for _, item := range items {
		item.OrderID = o.ID
	}

	if err := s.repo.CreateOrderTx(ctx, o, c.ID); err != nil {
		return nil, err
	}

	log.Info("checkout completed",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
	)
	return o, nil
}

func (s *service) checkAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	a, err := s.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		return err
	}
	if a == nil || a.UserID != userID {
		return ErrInvalidAddress.With("address_id", addressID.String())
	}
	return nil
}

func (s *service) uniqueOrderNumber(ctx context.Context) (string, error) {
	for range 5 {
		n := utils.GenerateOrderNumber()
		exists, err := s.repo.OrderNumberExists(ctx, n)
		if err != nil {
			return "", err
		}
		if !exists {
			return n, nil
		}
	}
	return "", ErrOrderNumberClash
}

func (s *service) Get(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	// A foreign order reads as not-found rather than forbidden.
	if !isAdmin && o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Order, int, error) {
	if opts.Status != nil && !ValidStatus(*opts.Status) {
		return nil, 0, ErrInvalidStatus.With("status", string(*opts.Status))
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	return s.repo.List(ctx, opts)
}

// Cancel lets the owner abandon an order that has not been paid yet.
func (s *service) Cancel(ctx context.Context, userID, orderID uuid.UUID) (*Order, error) {
	o, err := s.Get(ctx, userID, orderID, false)
	if err != nil {
		return nil, err
	}

	if o.Status != StatusPending {
		return nil, ErrInvalidTransition.
			With("from", string(o.Status)).
			With("to", string(StatusCanceled))
	}

	return s.transition(ctx, o, StatusCanceled)
}

// UpdateStatus applies an admin-driven transition through the legal-move
// table. Payment success is the only path to paid and arrives via the
// webhook flow, not here.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, to Status) (*Order, error) {
	if !ValidStatus(to) {
		return nil, ErrInvalidStatus.With("status", string(to))
	}
	if to == StatusPaid {
		return nil, ErrInvalidTransition.With("reason", "paid is set by payment confirmation")
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	if !CanTransition(o.Status, to) {
		return nil, ErrInvalidTransition.
			With("from", string(o.Status)).
			With("to", string(to))
	}

	return s.transition(ctx, o, to)
}

func (s *service) transition(ctx context.Context, o *Order, to Status) (*Order, error) {
	from := o.Status
	now := time.Now()

	o.Status = to
	switch to {
	case StatusPaid:
		o.PaidAt = &now
	case StatusShipped:
		o.ShippedAt = &now
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCanceled:
		o.CanceledAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, o); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("order status changed",
		zap.String("order_id", o.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return o, nil
}
