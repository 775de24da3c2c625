package user

import "storefront-be/internal/apperr"

var (
	ErrEmailExists        = apperr.New(apperr.KindDuplicate, "email already registered")
	ErrInvalidCredentials = apperr.New(apperr.KindAuthentication, "invalid email or password")
	ErrAccountInactive    = apperr.New(apperr.KindAuthentication, "account is deactivated")
	ErrUserNotFound       = apperr.New(apperr.KindNotFound, "user not found")
	ErrInvalidInput       = apperr.New(apperr.KindValidation, "invalid user input")
	ErrInvalidRole        = apperr.New(apperr.KindValidation, "unknown role")
	ErrSelfAction         = apperr.New(apperr.KindValidation, "cannot change own account state")

	PgUniqueViolation = "23505"
)
