package product

import "storefront-be/internal/apperr"

var (
	ErrProductNotFound = apperr.New(apperr.KindNotFound, "product not found")
	ErrDuplicateSKU    = apperr.New(apperr.KindDuplicate, "product with this SKU already exists")
	ErrInvalidInput    = apperr.New(apperr.KindValidation, "invalid product input")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
