package address

import "storefront-be/internal/apperr"

var (
	ErrAddressNotFound = apperr.New(apperr.KindNotFound, "address not found")
	ErrInvalidInput    = apperr.New(apperr.KindValidation, "invalid address input")
	ErrTooMany         = apperr.New(apperr.KindResourceLimit, "address limit reached")
	ErrNotOwner        = apperr.New(apperr.KindAuthorization, "address belongs to another user")
)
