package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	SKU         string    `json:"sku"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsPublished bool      `json:"is_published"`
	CategoryID  uuid.UUID `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NewProductInput struct {
	Name        string
	Description *string
	Price       float64
	Stock       int
	SKU         string
	ImageURL    *string
	IsPublished bool
	CategoryID  uuid.UUID
}

// Patch carries only the fields a partial update provides. Nil means
// "leave unchanged"; the repository applies set fields one by one.
type Patch struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	ImageURL    *string
	IsPublished *bool
	CategoryID  *uuid.UUID
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil &&
		p.Description == nil &&
		p.Price == nil &&
		p.Stock == nil &&
		p.ImageURL == nil &&
		p.IsPublished == nil &&
		p.CategoryID == nil
}

type ListOptions struct {
	CategoryID    *uuid.UUID
	Search        *string
	MinPrice      *float64
	MaxPrice      *float64
	InStock       *bool
	OnlyPublished bool
	SortBy        string
	SortOrder     string
	Page          int
	Limit         int
}
