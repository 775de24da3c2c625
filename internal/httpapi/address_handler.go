package httpapi

import (
	"net/http"

	"storefront-be/internal/address"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	svc address.Service
}

func NewAddressHandler(svc address.Service) *AddressHandler {
	return &AddressHandler{svc: svc}
}

func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.svc.List(c.Request.Context(), mustUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": addresses})
}

func (h *AddressHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	a, err := h.svc.Get(c.Request.Context(), mustUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": a})
}

func (h *AddressHandler) Create(c *gin.Context) {
	var input address.NewAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, address.ErrInvalidInput.With("reason", err.Error()))
		return
	}

	a, err := h.svc.Create(c.Request.Context(), mustUserID(c), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": a})
}

func (h *AddressHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var patch address.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, address.ErrInvalidInput.With("reason", err.Error()))
		return
	}

	a, err := h.svc.Update(c.Request.Context(), mustUserID(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": a})
}

func (h *AddressHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), mustUserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
