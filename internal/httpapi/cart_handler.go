package httpapi

import (
	"net/http"

	"storefront-be/internal/cart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler serves both guest and account carts; cartIdentity decides
// which one a request touches.
type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func (h *CartHandler) Get(c *gin.Context) {
	crt, err := h.svc.Get(c.Request.Context(), cartIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": crt})
}

type cartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, cart.ErrInvalidQuantity.With("reason", err.Error()))
		return
	}

	crt, err := h.svc.AddItem(c.Request.Context(), cartIdentity(c), req.ProductID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": crt})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, err := uuidParam(c, "productId")
	if err != nil {
		writeError(c, err)
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, cart.ErrInvalidQuantity.With("reason", err.Error()))
		return
	}

	crt, err := h.svc.UpdateItem(c.Request.Context(), cartIdentity(c), productID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": crt})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := uuidParam(c, "productId")
	if err != nil {
		writeError(c, err)
		return
	}

	crt, err := h.svc.RemoveItem(c.Request.Context(), cartIdentity(c), productID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": crt})
}

func (h *CartHandler) Clear(c *gin.Context) {
	crt, err := h.svc.Clear(c.Request.Context(), cartIdentity(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": crt})
}
