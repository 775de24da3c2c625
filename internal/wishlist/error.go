package wishlist

import "storefront-be/internal/apperr"

var (
	ErrItemNotFound    = apperr.New(apperr.KindNotFound, "product not in wishlist")
	ErrProductNotFound = apperr.New(apperr.KindNotFound, "product not found")

	PgUniqueViolation = "23505"
)
