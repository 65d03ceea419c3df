package model

import "time"

// MarketplaceItem is a dorm-marketplace listing. Only a URL is kept for
// the image; the file itself lives elsewhere.
type MarketplaceItem struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Condition   string    `json:"condition,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined owner profile (not always populated).
	User *User `json:"user,omitempty"`
}

// Marketplace item statuses.
const (
	ItemStatusAvailable = "available"
	ItemStatusSold      = "sold"
)

// ValidItemStatus reports whether s is a known marketplace item status.
func ValidItemStatus(s string) bool {
	return s == ItemStatusAvailable || s == ItemStatusSold
}
