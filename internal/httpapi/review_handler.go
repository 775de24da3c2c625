package httpapi

import (
	"net/http"

	"storefront-be/internal/product"
	"storefront-be/internal/review"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc        review.Service
	productSvc product.Service
}

func NewReviewHandler(svc review.Service, productSvc product.Service) *ReviewHandler {
	return &ReviewHandler{svc: svc, productSvc: productSvc}
}

// ListForProduct shows the approved reviews of a product with its rating
// summary. Reviews hang off the product slug in the URL.
func (h *ReviewHandler) ListForProduct(c *gin.Context) {
	p, err := h.productSvc.GetBySlug(c.Request.Context(), c.Param("slug"), isAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}
	productID := p.ID

	page, limit := pageParams(c)
	reviews, total, err := h.svc.ListForProduct(c.Request.Context(), productID, page, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), productID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":    reviews,
		"summary": summary,
		"pagination": pagination{
			Page:     page,
			PageSize: limit,
			Total:    total,
		},
	})
}

type reviewRequest struct {
	Rating int     `json:"rating" binding:"required"`
	Title  *string `json:"title"`
	Body   string  `json:"body" binding:"required"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	p, err := h.productSvc.GetBySlug(c.Request.Context(), c.Param("slug"), false)
	if err != nil {
		writeError(c, err)
		return
	}
	productID := p.ID

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, review.ErrInvalidInput.With("reason", err.Error()))
		return
	}

	rev, err := h.svc.Create(c.Request.Context(), mustUserID(c), productID, review.NewReviewInput{
		Rating: req.Rating,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": rev})
}

func (h *ReviewHandler) Update(c *gin.Context) {
	reviewID, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, review.ErrInvalidInput.With("reason", err.Error()))
		return
	}

	rev, err := h.svc.Update(c.Request.Context(), mustUserID(c), reviewID, review.NewReviewInput{
		Rating: req.Rating,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rev})
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), mustUserID(c), reviewID, isAdmin(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
