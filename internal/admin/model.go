package admin

// LowStockThreshold is the stock level at or below which a published
// product counts as running out.
const LowStockThreshold = 5

type ProductStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	LowStock  int `json:"low_stock"`
}

type OrderStats struct {
	Total    int            `json:"total"`
	Revenue  float64        `json:"revenue"`
	ByStatus map[string]int `json:"by_status"`
}

// Dashboard is the admin landing-page aggregate.
type Dashboard struct {
	Users          int          `json:"users"`
	Orders         OrderStats   `json:"orders"`
	Products       ProductStats `json:"products"`
	PendingReviews int          `json:"pending_reviews"`
}
