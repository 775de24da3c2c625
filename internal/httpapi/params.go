package httpapi

import (
	"strconv"

	"storefront-be/internal/apperr"
	"storefront-be/internal/cart"
	"storefront-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errBadID = apperr.New(apperr.KindValidation, "malformed id in path")

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errBadID.With("param", name)
	}
	return id, nil
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

func queryFloat(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func queryBool(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

func queryUUID(c *gin.Context, name string) *uuid.UUID {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// cartIdentity picks the caller's cart identity: the authenticated user if
// present, otherwise the guest session cookie.
func cartIdentity(c *gin.Context) cart.Identity {
	ctx := c.Request.Context()
	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		return cart.UserIdentity(userID)
	}
	sessionID, _ := utils.GetSessionIDFromContext(ctx)
	return cart.SessionIdentity(sessionID)
}

func mustUserID(c *gin.Context) uuid.UUID {
	// RequireAuth runs before any handler calling this.
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())
	return userID
}

func isAdmin(c *gin.Context) bool {
	return utils.GetUserRoleFromContext(c.Request.Context()) == utils.RoleAdmin
}
