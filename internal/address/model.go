package address

import (
	"time"

	"github.com/google/uuid"
)

// MaxPerUser caps how many addresses a single account can hold.
const MaxPerUser = 10

type Address struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Label      *string   `json:"label,omitempty"`
	Recipient  string    `json:"recipient"`
	Phone      string    `json:"phone"`
	Line1      string    `json:"line1"`
	Line2      *string   `json:"line2,omitempty"`
	City       string    `json:"city"`
	Province   string    `json:"province"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type NewAddressInput struct {
	Label      *string `json:"label"`
	Recipient  string  `json:"recipient"`
	Phone      string  `json:"phone"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2"`
	City       string  `json:"city"`
	Province   string  `json:"province"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
	IsDefault  bool    `json:"is_default"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Label      *string `json:"label"`
	Recipient  *string `json:"recipient"`
	Phone      *string `json:"phone"`
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
	IsDefault  *bool   `json:"is_default"`
}

func (p Patch) IsEmpty() bool {
	return p.Label == nil && p.Recipient == nil && p.Phone == nil &&
		p.Line1 == nil && p.Line2 == nil && p.City == nil &&
		p.Province == nil && p.PostalCode == nil && p.Country == nil &&
		p.IsDefault == nil
}
