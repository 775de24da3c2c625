package httpapi

import (
	"net/http"

	"storefront-be/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type checkoutRequest struct {
	ShippingAddressID uuid.UUID  `json:"shipping_address_id" binding:"required"`
	BillingAddressID  *uuid.UUID `json:"billing_address_id"`
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, order.ErrInvalidAddress.With("reason", err.Error()))
		return
	}

	billing := req.ShippingAddressID
	if req.BillingAddressID != nil {
		billing = *req.BillingAddressID
	}

	o, err := h.svc.Checkout(c.Request.Context(), mustUserID(c), req.ShippingAddressID, billing)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": o})
}

func (h *OrderHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	userID := mustUserID(c)

	opts := order.ListOptions{
		UserID:    &userID,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
		Limit:     limit,
	}
	if raw := c.Query("status"); raw != "" {
		status := order.Status(raw)
		opts.Status = &status
	}

	orders, total, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		writeError(c, err)
		return
	}
	writePage(c, orders, opts.Page, opts.Limit, total)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	o, err := h.svc.Get(c.Request.Context(), mustUserID(c), id, isAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": o})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	o, err := h.svc.Cancel(c.Request.Context(), mustUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": o})
}

// AdminList serves the back-office order table across all users.
func (h *OrderHandler) AdminList(c *gin.Context) {
	page, limit := pageParams(c)

	opts := order.ListOptions{
		UserID:    queryUUID(c, "user_id"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      page,
		Limit:     limit,
	}
	if raw := c.Query("status"); raw != "" {
		status := order.Status(raw)
		opts.Status = &status
	}

	orders, total, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		writeError(c, err)
		return
	}
	writePage(c, orders, opts.Page, opts.Limit, total)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, order.ErrInvalidStatus.With("reason", err.Error()))
		return
	}

	o, err := h.svc.UpdateStatus(c.Request.Context(), id, order.Status(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": o})
}
