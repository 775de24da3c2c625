package wishlist

import (
	"time"

	"github.com/google/uuid"
)

// Item is a saved-for-later pointer to a live product. Unlike cart lines it
// carries no price snapshot; the product is re-read on display and on move
// to cart.
type Item struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`

	ProductName  string  `json:"product_name"`
	ProductPrice float64 `json:"product_price"`
	ProductImage *string `json:"product_image_url,omitempty"`
	InStock      bool    `json:"in_stock"`
	IsPublished  bool    `json:"is_published"`
}
