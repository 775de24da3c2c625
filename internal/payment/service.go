package payment

import (
	"context"
	"fmt"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ProviderStripe  = "stripe"
	defaultCurrency = "usd"
)

type Service interface {
	CreateCheckoutSession(ctx context.Context, userID, orderID uuid.UUID) (*Payment, error)
	GetByOrder(ctx context.Context, userID, orderID uuid.UUID, isAdmin bool) (*Payment, error)

	// Webhook entry points. Both swallow out-of-band conditions (unknown
	// session, replayed event, order already settled) and report success so
	// the gateway stops retrying.
	HandleCheckoutCompleted(ctx context.Context, sessionID string, completedAt time.Time) error
	HandleCheckoutExpired(ctx context.Context, sessionID, reason string) error
}

type service struct {
	repo      Repository
	orderRepo order.Repository
	gateway   Gateway
	metrics   *metrics.Registry
	domain    string
}

func NewService(repo Repository, orderRepo order.Repository, gateway Gateway, reg *metrics.Registry, domain string) Service {
	return &service{
		repo:      repo,
		orderRepo: orderRepo,
		gateway:   gateway,
		metrics:   reg,
		domain:    domain,
	}
}

// CreateCheckoutSession opens (or returns the already-open) gateway session
// for a pending order. The idempotency key derived from the user/order pair
// makes gateway-side retries converge on one session.
func (s *service) CreateCheckoutSession(ctx context.Context, userID, orderID uuid.UUID) (*Payment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateCheckoutSession"),
		zap.String("order_id", orderID.String()),
	)

	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.UserID != userID {
		return nil, order.ErrOrderNotFound
	}
	if o.Status != order.StatusPending {
		return nil, ErrOrderNotPayable.With("status", string(o.Status))
	}

	existing, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case StatusPending:
			return existing, nil
		case StatusSuccess:
			return nil, ErrOrderNotPayable.With("reason", "payment already completed")
		}
	}

	key := IdempotencyKey(userID, orderID)
	session, err := s.gateway.CreateCheckoutSession(ctx, CheckoutParams{
		OrderID:        o.ID,
		OrderNumber:    o.OrderNumber,
		Amount:         o.TotalAmount,
		Currency:       defaultCurrency,
		IdempotencyKey: key,
		SuccessURL:     fmt.Sprintf("%s/checkout/success?order=%s", s.domain, o.ID),
		CancelURL:      fmt.Sprintf("%s/checkout/cancel?order=%s", s.domain, o.ID),
	})
	if err != nil {
		return nil, err
	}

	if existing != nil {
		// Failed attempt being retried: rearm the existing row.
		existing.SessionID = session.ID
		existing.CheckoutURL = session.URL
		if err := s.repo.ResetForRetry(ctx, existing); err != nil {
			return nil, err
		}
		log.Info("payment retried", zap.String("session_id", session.ID))
		return existing, nil
	}

	p := &Payment{
		ID:             uuid.New(),
		OrderID:        o.ID,
		Provider:       ProviderStripe,
		SessionID:      session.ID,
		IdempotencyKey: key,
		Status:         StatusPending,
		Amount:         o.TotalAmount,
		Currency:       defaultCurrency,
		CheckoutURL:    session.URL,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("checkout session opened", zap.String("session_id", session.ID))
	return p, nil
}

func (s *service) GetByOrder(ctx context.Context, userID, orderID uuid.UUID, isAdmin bool) (*Payment, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || (!isAdmin && o.UserID != userID) {
		return nil, order.ErrOrderNotFound
	}

	p, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// HandleCheckoutCompleted settles the payment and promotes the order to
// paid. Every unexpected state is an acknowledged no-op: the gateway
// retries on failure status only, and a replay must not double-apply.
func (s *service) HandleCheckoutCompleted(ctx context.Context, sessionID string, completedAt time.Time) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "HandleCheckoutCompleted"),
		zap.String("session_id", sessionID),
	)

	p, err := s.repo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	if p == nil {
		log.Warn("webhook for unknown session ignored")
		return nil
	}
	if p.Status == StatusSuccess {
		log.Info("duplicate success event ignored")
		s.metrics.WebhooksDuplicate.Inc()
		return nil
	}

	o, err := s.orderRepo.GetByID(ctx, p.OrderID)
	if err != nil {
		return err
	}
	if o == nil {
		log.Warn("payment references missing order", zap.String("order_id", p.OrderID.String()))
		return nil
	}
	if o.Status != order.StatusPending {
		// A verified success still settles the payment row. The order-side
		// update inside ApplyPaymentSuccess fires only while the order is
		// pending, so the already-settled order is left untouched.
		if err := s.repo.ApplyPaymentSuccess(ctx, p.ID, o.ID, completedAt); err != nil {
			return err
		}
		log.Info("payment settled against non-pending order",
			zap.String("order_status", string(o.Status)))
		s.metrics.WebhooksDuplicate.Inc()
		return nil
	}

	if err := s.repo.ApplyPaymentSuccess(ctx, p.ID, o.ID, completedAt); err != nil {
		return err
	}

	s.metrics.WebhooksProcessed.Inc()
	log.Info("payment confirmed",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
	)
	return nil
}

func (s *service) HandleCheckoutExpired(ctx context.Context, sessionID, reason string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "HandleCheckoutExpired"),
		zap.String("session_id", sessionID),
	)

	p, err := s.repo.GetBySessionID(ctx, sessionID)
	if err != nil {
		return err
	}
	if p == nil {
		log.Warn("webhook for unknown session ignored")
		return nil
	}
	if p.Status != StatusPending {
		log.Info("session already settled, expiry event ignored",
			zap.String("payment_status", string(p.Status)))
		s.metrics.WebhooksDuplicate.Inc()
		return nil
	}

	if reason == "" {
		reason = "checkout session expired"
	}
	if err := s.repo.MarkFailed(ctx, p.ID, reason); err != nil {
		return err
	}

	s.metrics.WebhooksProcessed.Inc()
	log.Info("payment marked failed", zap.String("reason", reason))
	return nil
}
