package cart

import "storefront-be/internal/apperr"

var (
	// -- Validation & Input --
	ErrSessionRequired = apperr.New(apperr.KindValidation, "session id is required for guest cart")
	ErrInvalidQuantity = apperr.New(apperr.KindValidation, "quantity must be at least 1")

	// -- Resource State --
	ErrProductNotFound   = apperr.New(apperr.KindNotFound, "product not found")
	ErrProductInactive   = apperr.New(apperr.KindProductInactive, "product is not available")
	ErrInsufficientStock = apperr.New(apperr.KindInsufficientStock, "product has insufficient stock")
	ErrItemNotFound      = apperr.New(apperr.KindNotFound, "product not found in cart")

	// ErrCartExists surfaces the unique-identity constraint; resolve
	// retries the lookup instead of failing (the get-or-create race).
	ErrCartExists = apperr.New(apperr.KindDuplicate, "cart already exists for identity")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
