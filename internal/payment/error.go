package payment

import "storefront-be/internal/apperr"

var (
	ErrPaymentNotFound  = apperr.New(apperr.KindNotFound, "payment not found")
	ErrOrderNotPayable  = apperr.New(apperr.KindInvalidTransition, "order is not awaiting payment")
	ErrGatewayFailure   = apperr.New(apperr.KindPaymentGateway, "payment gateway request failed")
	ErrInvalidSignature = apperr.New(apperr.KindWebhookValidation, "webhook signature verification failed")
	ErrMalformedEvent   = apperr.New(apperr.KindWebhookValidation, "webhook payload is malformed")
	ErrStaleSignature   = apperr.New(apperr.KindWebhookValidation, "webhook timestamp outside tolerance")
)
