package httpapi

import (
	"net/http"

	"storefront-be/internal/category"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	svc category.Service
}

func NewCategoryHandler(svc category.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	cat, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cat})
}

type createCategoryRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, category.ErrInvalidInput.With("reason", err.Error()))
		return
	}

	cat, err := h.svc.Create(c.Request.Context(), req.Name, req.Description, req.ParentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": cat})
}

type updateCategoryRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, category.ErrInvalidInput.With("reason", err.Error()))
		return
	}

	cat, err := h.svc.Update(c.Request.Context(), id, category.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ParentID:    req.ParentID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cat})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
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
