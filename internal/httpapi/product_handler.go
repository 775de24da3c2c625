package httpapi

import (
	"net/http"
	"strings"

	"storefront-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	svc product.Service
}

func NewProductHandler(svc product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) listOptions(c *gin.Context, includeUnpublished bool) product.ListOptions {
	page, limit := pageParams(c)

	var search *string
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		search = &s
	}

	return product.ListOptions{
		CategoryID:    queryUUID(c, "category_id"),
		Search:        search,
		MinPrice:      queryFloat(c, "min_price"),
		MaxPrice:      queryFloat(c, "max_price"),
		InStock:       queryBool(c, "in_stock"),
		OnlyPublished: !includeUnpublished,
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
		Page:          page,
		Limit:         limit,
	}
}

// List serves the public catalog: published products only.
func (h *ProductHandler) List(c *gin.Context) {
	opts := h.listOptions(c, false)
	result, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		writeError(c, err)
		return
	}
	writePage(c, result.Items, opts.Page, opts.Limit, result.Total)
}

func (h *ProductHandler) GetBySlug(c *gin.Context) {
	p, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"), isAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

// AdminList includes unpublished products.
func (h *ProductHandler) AdminList(c *gin.Context) {
	opts := h.listOptions(c, true)
	result, err := h.svc.List(c.Request.Context(), opts)
	if err != nil {
		writeError(c, err)
		return
	}
	writePage(c, result.Items, opts.Page, opts.Limit, result.Total)
}

type createProductRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	SKU         string    `json:"sku" binding:"required"`
	ImageURL    *string   `json:"image_url"`
	IsPublished bool      `json:"is_published"`
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, product.ErrInvalidInput.With("reason", err.Error()))
		return
	}

	p, err := h.svc.Create(c.Request.Context(), product.NewProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		SKU:         req.SKU,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": p})
}

type updateProductRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price"`
	Stock       *int       `json:"stock"`
	ImageURL    *string    `json:"image_url"`
	IsPublished *bool      `json:"is_published"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, product.ErrInvalidInput.With("reason", err.Error()))
		return
	}

	p, err := h.svc.Update(c.Request.Context(), id, product.Patch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": p})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
