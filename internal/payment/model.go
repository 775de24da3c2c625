package payment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Payment is one gateway checkout attempt for an order. The row doubles as
// the webhook idempotency guard: a payment already in a terminal status
// ignores further events.
type Payment struct {
	ID             uuid.UUID `json:"id"`
	OrderID        uuid.UUID `json:"order_id"`
	Provider       string    `json:"provider"`
	SessionID      string    `json:"session_id"`
	IdempotencyKey string    `json:"-"`
	Status         Status    `json:"status"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	CheckoutURL    string    `json:"checkout_url"`
	FailureReason  *string   `json:"failure_reason,omitempty"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
