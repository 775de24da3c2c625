package cart

import (
	"time"

	"github.com/google/uuid"
)

// Cart is owned by exactly one identity: a registered user or a guest
// session. A resolved cart never has both set and never has neither.
type Cart struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	SessionID *string    `json:"session_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Items []*CartItem `json:"items"`
}

// CartItem carries a price snapshot taken when the product was added.
// Later product edits never change these fields.
type CartItem struct {
	ID              uuid.UUID  `json:"id"`
	CartID          uuid.UUID  `json:"cart_id"`
	ProductID       uuid.UUID  `json:"product_id"`
	Quantity        int        `json:"quantity"`
	UnitPrice       float64    `json:"unit_price"`
	ProductName     string     `json:"product_name"`
	ProductImageURL *string    `json:"product_image_url,omitempty"`
	AddedAt         time.Time  `json:"added_at"`
}

// Identity is the caller's cart identity as the boundary layer resolved it.
type Identity struct {
	UserID    *uuid.UUID
	SessionID *string
}

func UserIdentity(userID uuid.UUID) Identity {
	return Identity{UserID: &userID}
}

func SessionIdentity(sessionID string) Identity {
	return Identity{SessionID: &sessionID}
}
