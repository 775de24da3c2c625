package httpapi

import (
	"net/http"

	"storefront-be/internal/admin"
	"storefront-be/internal/review"
	"storefront-be/internal/user"

	"github.com/gin-gonic/gin"
)

// AdminHandler groups the back-office endpoints: dashboard, user
// administration, and the review moderation queue.
type AdminHandler struct {
	svc       admin.Service
	userSvc   user.Service
	reviewSvc review.Service
}

func NewAdminHandler(svc admin.Service, userSvc user.Service, reviewSvc review.Service) *AdminHandler {
	return &AdminHandler{svc: svc, userSvc: userSvc, reviewSvc: reviewSvc}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}

func (h *AdminHandler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.svc.Metrics()})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)

	opts := user.ListOptions{
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	if role := c.Query("role"); role != "" {
		opts.Role = &role
	}

	users, total, err := h.userSvc.List(c.Request.Context(), opts)
	if err != nil {
		writeError(c, err)
		return
	}
	writePage(c, users, opts.Page, opts.Limit, total)
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	targetID, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, user.ErrInvalidRole.With("reason", err.Error()))
		return
	}

	u, err := h.userSvc.UpdateRole(c.Request.Context(), mustUserID(c), targetID, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": u})
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *AdminHandler) SetUserActive(c *gin.Context) {
	targetID, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, user.ErrInvalidInput.With("reason", err.Error()))
		return
	}

	u, err := h.userSvc.SetActive(c.Request.Context(), mustUserID(c), targetID, *req.IsActive)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": u})
}

func (h *AdminHandler) PendingReviews(c *gin.Context) {
	page, limit := pageParams(c)
	reviews, total, err := h.reviewSvc.ListPending(c.Request.Context(), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	writePage(c, reviews, page, limit, total)
}

func (h *AdminHandler) ApproveReview(c *gin.Context) {
	h.moderate(c, review.StatusApproved)
}

func (h *AdminHandler) RejectReview(c *gin.Context) {
	h.moderate(c, review.StatusRejected)
}

func (h *AdminHandler) moderate(c *gin.Context, verdict review.Status) {
	reviewID, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	rev, err := h.reviewSvc.Moderate(c.Request.Context(), mustUserID(c), reviewID, verdict)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rev})
}
