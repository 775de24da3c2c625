package payment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"time"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutParams describes the session the gateway should open.
type CheckoutParams struct {
	OrderID        uuid.UUID
	OrderNumber    string
	Amount         float64
	Currency       string
	IdempotencyKey string
	SuccessURL     string
	CancelURL      string
}

// GatewaySession is the gateway's view of an opened checkout session.
type GatewaySession struct {
	ID  string
	URL string
}

// Gateway opens hosted checkout sessions with an external payment provider.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*GatewaySession, error)
}

// IdempotencyKey derives a stable key for a user/order pair so that retried
// checkout requests reuse the same gateway session instead of opening a new
// one.
func IdempotencyKey(userID, orderID uuid.UUID) string {
	sum := sha256.Sum256([]byte(userID.String() + ":" + orderID.String()))
	return hex.EncodeToString(sum[:])
}

const stripeBaseURL = "https://api.stripe.com"

type stripeGateway struct {
	client *resty.Client
}

// NewStripeGateway builds a Gateway backed by Stripe Checkout.
func NewStripeGateway(secretKey string) Gateway {
	client := resty.New().
		SetBaseURL(stripeBaseURL).
		SetAuthToken(secretKey).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &stripeGateway{client: client}
}

type stripeSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*GatewaySession, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "stripe"),
		zap.String("order_id", params.OrderID.String()),
	)

	// Stripe takes amounts in the currency's minor unit.
	unitAmount := int64(math.Round(params.Amount * 100))

	var out stripeSessionResponse
	var apiErr stripeErrorResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", params.IdempotencyKey).
		SetFormData(map[string]string{
			"mode":                                       "payment",
			"success_url":                                params.SuccessURL,
			"cancel_url":                                 params.CancelURL,
			"client_reference_id":                        params.OrderID.String(),
			"metadata[order_id]":                         params.OrderID.String(),
			"line_items[0][quantity]":                    "1",
			"line_items[0][price_data][currency]":        params.Currency,
			"line_items[0][price_data][unit_amount]":     strconv.FormatInt(unitAmount, 10),
			"line_items[0][price_data][product_data][name]": fmt.Sprintf("Order %s", params.OrderNumber),
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1/checkout/sessions")

	if err != nil {
		log.Error("stripe request failed", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindPaymentGateway, "payment gateway request failed", err)
	}

	if resp.IsError() {
		log.Error("stripe rejected checkout session",
			zap.Int("status", resp.StatusCode()),
			zap.String("stripe_code", apiErr.Error.Code),
			zap.String("stripe_message", apiErr.Error.Message),
		)
		return nil, ErrGatewayFailure.
			With("status", resp.StatusCode()).
			With("code", apiErr.Error.Code)
	}

	log.Info("stripe checkout session created", zap.String("session_id", out.ID))
	return &GatewaySession{ID: out.ID, URL: out.URL}, nil
}
