package review

import "storefront-be/internal/apperr"

var (
	ErrReviewNotFound  = apperr.New(apperr.KindNotFound, "review not found")
	ErrDuplicateReview = apperr.New(apperr.KindDuplicate, "product already reviewed by this user")
	ErrInvalidInput    = apperr.New(apperr.KindValidation, "invalid review input")
	ErrNotOwner        = apperr.New(apperr.KindAuthorization, "review belongs to another user")
	ErrProductNotFound = apperr.New(apperr.KindNotFound, "product not found")

	PgUniqueViolation = "23505"
)
