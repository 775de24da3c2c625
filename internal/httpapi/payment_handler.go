package httpapi

import (
	"net/http"

	"storefront-be/internal/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	svc payment.Service
}

func NewPaymentHandler(svc payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// CreateCheckoutSession opens (or re-serves) the gateway checkout for an
// order. The client redirects the shopper to the returned checkout_url.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	orderID, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.svc.CreateCheckoutSession(c.Request.Context(), mustUserID(c), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": p})
}

func (h *PaymentHandler) GetByOrder(c *gin.Context) {
	orderID, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := h.svc.GetByOrder(c.Request.Context(), mustUserID(c), orderID, isAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}
