package order

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCanceled  Status = "canceled"
)

// PaymentStatus mirrors the gateway-side outcome on the order row. It is
// tracked independently of Status but only a successful payment moves an
// order from pending to paid.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// transitions is the single source of truth for legal status moves.
var transitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCanceled},
	StatusPaid:    {StatusShipped, StatusCanceled},
	StatusShipped: {StatusDelivered},
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// Order is an immutable snapshot once created: items and amounts are frozen,
// only the status enums and their timestamps mutate afterwards.
type Order struct {
	ID                uuid.UUID     `json:"id"`
	UserID            uuid.UUID     `json:"user_id"`
	OrderNumber       string        `json:"order_number"`
	Status            Status        `json:"status"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	TotalAmount       float64       `json:"total_amount"`
	ShippingAddressID uuid.UUID     `json:"shipping_address_id"`
	BillingAddressID  uuid.UUID     `json:"billing_address_id"`

	PaidAt      *time.Time `json:"paid_at,omitempty"`
	ShippedAt   *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []*OrderItem `json:"items"`
}

// OrderItem keeps its own frozen snapshot, copied from the cart line.
type OrderItem struct {
	ID              uuid.UUID `json:"id"`
	OrderID         uuid.UUID `json:"order_id"`
	ProductID       uuid.UUID `json:"product_id"`
	Quantity        int       `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	ProductName     string    `json:"product_name"`
	ProductImageURL *string   `json:"product_image_url,omitempty"`
}

type ListOptions struct {
	UserID    *uuid.UUID
	Status    *Status
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}
