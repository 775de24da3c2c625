package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error. The HTTP layer owns the single
// kind-to-status mapping; services never see transport codes.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindValidation        Kind = "validation"
	KindDuplicate         Kind = "duplicate_resource"
	KindResourceLimit     Kind = "resource_limit"
	KindInvalidTransition Kind = "invalid_transition"
	KindInsufficientStock Kind = "insufficient_stock"
	KindProductInactive   Kind = "product_inactive"
	KindEmptyCart         Kind = "empty_cart"
	KindAuthentication    Kind = "authentication_failed"
	KindAuthorization     Kind = "authorization_failed"
	KindPaymentGateway    Kind = "payment_gateway_error"
	KindWebhookValidation Kind = "webhook_validation_error"
	KindInternal          Kind = "internal_error"
)

// Error is the domain error type shared by all services.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]any
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.err }

// Is lets errors.Is match two apperr values by kind, so sentinel-style
// package errors still work through wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

// With attaches a detail and returns a copy, leaving sentinels untouched.
func (e *Error) With(key string, value any) *Error {
	clone := &Error{Kind: e.Kind, Message: e.Message, err: e.err}
	clone.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return clone
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the underlying cause reachable via errors.Unwrap.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, err: err}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
