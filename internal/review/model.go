package review

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ValidModeration(s Status) bool {
	return s == StatusApproved || s == StatusRejected
}

type Review struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Title     *string   `json:"title,omitempty"`
	Body      string    `json:"body"`
	Status    Status    `json:"status"`

	ModeratedBy *uuid.UUID `json:"moderated_by,omitempty"`
	ModeratedAt *time.Time `json:"moderated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewReviewInput struct {
	Rating int     `json:"rating"`
	Title  *string `json:"title"`
	Body   string  `json:"body"`
}

// RatingSummary aggregates approved reviews for a product.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
