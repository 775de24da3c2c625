package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	signatureHeader = "Stripe-Signature"
	maxBodyBytes    = 64 * 1024

	eventCheckoutCompleted = "checkout.session.completed"
	eventCheckoutExpired   = "checkout.session.expired"
)

type event struct {
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// Handler terminates gateway webhooks: it verifies the signature against the
// raw body before any JSON parsing, then dispatches to the payment service.
type Handler struct {
	svc      payment.Service
	verifier *Verifier
	metrics  *metrics.Registry
}

func NewHandler(svc payment.Service, verifier *Verifier, reg *metrics.Registry) *Handler {
	return &Handler{svc: svc, verifier: verifier, metrics: reg}
}

func (h *Handler) Handle(c *gin.Context) {
	ctx := c.Request.Context()
	log := logger.FromCtx(ctx)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.metrics.WebhooksInvalid.Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	if err := h.verifier.Verify(c.GetHeader(signatureHeader), body, time.Now()); err != nil {
		h.metrics.WebhooksInvalid.Inc()
		log.Warn("webhook signature rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	var ev event
	if err := json.Unmarshal(body, &ev); err != nil || ev.Data.Object.ID == "" {
		h.metrics.WebhooksInvalid.Inc()
		log.Warn("malformed webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	switch ev.Type {
	case eventCheckoutCompleted:
		err = h.svc.HandleCheckoutCompleted(ctx, ev.Data.Object.ID, time.Unix(ev.Created, 0))
	case eventCheckoutExpired:
		err = h.svc.HandleCheckoutExpired(ctx, ev.Data.Object.ID, "checkout session expired")
	default:
		// Unknown event types are acknowledged so the gateway does not
		// retry them forever.
		log.Debug("unhandled webhook event type", zap.String("type", ev.Type))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if err != nil {
		log.Error("webhook processing failed",
			zap.String("type", ev.Type),
			zap.String("session_id", ev.Data.Object.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
