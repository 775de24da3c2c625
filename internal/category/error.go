package category

import "storefront-be/internal/apperr"

var (
	ErrCategoryNotFound  = apperr.New(apperr.KindNotFound, "category not found")
	ErrDuplicateCategory = apperr.New(apperr.KindDuplicate, "category with this slug already exists")
	ErrSelfParent        = apperr.New(apperr.KindValidation, "category cannot be its own parent")
	ErrInvalidInput      = apperr.New(apperr.KindValidation, "invalid category input")
)
