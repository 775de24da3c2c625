package httpapi

import (
	"errors"
	"net/http"

	"storefront-be/internal/apperr"
	"storefront-be/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// kindStatus is the single place domain error kinds become HTTP codes.
var kindStatus = map[apperr.Kind]int{
	apperr.KindNotFound:          http.StatusNotFound,
	apperr.KindValidation:        http.StatusBadRequest,
	apperr.KindDuplicate:         http.StatusConflict,
	apperr.KindResourceLimit:     http.StatusConflict,
	apperr.KindInvalidTransition: http.StatusConflict,
	apperr.KindInsufficientStock: http.StatusConflict,
	apperr.KindProductInactive:   http.StatusConflict,
	apperr.KindEmptyCart:         http.StatusUnprocessableEntity,
	apperr.KindAuthentication:    http.StatusUnauthorized,
	apperr.KindAuthorization:     http.StatusForbidden,
	apperr.KindPaymentGateway:    http.StatusBadGateway,
	apperr.KindWebhookValidation: http.StatusBadRequest,
	apperr.KindInternal:          http.StatusInternalServerError,
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// writeError renders a domain error. Unclassified errors are masked as a
// generic 500 so driver internals never leak to clients.
func writeError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		logger.FromCtx(c.Request.Context()).Error("unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorBody{
			Code:    string(apperr.KindInternal),
			Message: "internal server error",
		}})
		return
	}

	status, ok := kindStatus[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= 500 {
		logger.FromCtx(c.Request.Context()).Error("request failed", zap.Error(err))
	}

	c.JSON(status, gin.H{"error": errorBody{
		Code:    string(appErr.Kind),
		Message: appErr.Message,
		Details: appErr.Details,
	}})
}

type pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// writePage wraps a listing in the standard pagination envelope.
func writePage(c *gin.Context, data any, page, pageSize, total int) {
	c.JSON(http.StatusOK, gin.H{
		"data": data,
		"pagination": pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	})
}
