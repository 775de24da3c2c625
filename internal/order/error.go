package order

import "storefront-be/internal/apperr"

var (
	ErrOrderNotFound  = apperr.New(apperr.KindNotFound, "order not found")
	ErrInvalidAddress = apperr.New(apperr.KindValidation, "invalid address reference")
	ErrEmptyCart      = apperr.New(apperr.KindEmptyCart, "cart is empty")
	ErrUnauthorized   = apperr.New(apperr.KindAuthorization, "cannot access others' orders")

	ErrInsufficientStock = apperr.New(apperr.KindInsufficientStock, "product has insufficient stock")
	ErrInvalidTransition = apperr.New(apperr.KindInvalidTransition, "illegal order status transition")
	ErrInvalidStatus     = apperr.New(apperr.KindValidation, "unknown order status")
	ErrOrderNumberClash  = apperr.New(apperr.KindInternal, "could not allocate a unique order number")
)
