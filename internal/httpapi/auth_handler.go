package httpapi

import (
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const accessTokenMaxAge = 24 * 60 * 60

type AuthHandler struct {
	userSvc user.Service
	cartSvc cart.Service
}

func NewAuthHandler(userSvc user.Service, cartSvc cart.Service) *AuthHandler {
	return &AuthHandler{userSvc: userSvc, cartSvc: cartSvc}
}

type registerRequest struct {
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	FullName *string `json:"full_name"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, user.ErrInvalidInput.With("reason", err.Error()))
		return
	}

	token, u, err := h.userSvc.Register(c.Request.Context(), user.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.adoptGuestCart(c, u)
	c.SetCookie("access_token", token, accessTokenMaxAge, "/", "", false, true)
	c.JSON(http.StatusCreated, gin.H{"data": u, "token": token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, user.ErrInvalidInput.With("reason", err.Error()))
		return
	}

	token, u, err := h.userSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.adoptGuestCart(c, u)
	c.SetCookie("access_token", token, accessTokenMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"data": u, "token": token})
}

// adoptGuestCart folds the visitor's guest cart, if any, into the account
// they just authenticated into. Failures are logged but never block the
// login itself.
func (h *AuthHandler) adoptGuestCart(c *gin.Context, u *user.User) {
	ctx := c.Request.Context()
	sessionID, ok := utils.GetSessionIDFromContext(ctx)
	if !ok {
		return
	}

	if err := h.cartSvc.MergeGuestCart(ctx, u.ID, sessionID); err != nil {
		logger.FromCtx(ctx).Warn("guest cart merge failed",
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
	}
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"logged_out": true}})
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.userSvc.GetByID(c.Request.Context(), mustUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": u})
}
