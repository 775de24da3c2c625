package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-be/internal/wishlist"
)

type WishlistHandler struct {
	svc wishlist.Service
}

func NewWishlistHandler(svc wishlist.Service) *WishlistHandler {
	return &WishlistHandler{svc: svc}
}

func (h *WishlistHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	items, total, err := h.svc.List(c.Request.Context(), mustUserID(c), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	writePage(c, items, page, limit, total)
}

func (h *WishlistHandler) Count(c *gin.Context) {
	count, err := h.svc.Count(c.Request.Context(), mustUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"count": count}})
}

func (h *WishlistHandler) Add(c *gin.Context) {
	productID, err := uuidParam(c, "productId")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.svc.Add(c.Request.Context(), mustUserID(c), productID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"saved": true}})
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	productID, err := uuidParam(c, "productId")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.svc.Remove(c.Request.Context(), mustUserID(c), productID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WishlistHandler) Clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context(), mustUserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	productID, err := uuidParam(c, "productId")
	if err != nil {
		writeError(c, err)
		return
	}

	crt, err := h.svc.MoveToCart(c.Request.Context(), mustUserID(c), productID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": crt})
}
