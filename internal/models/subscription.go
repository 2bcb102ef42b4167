package models

import "time"

// Subscription represents one subscriber's interest in one currency.
// The natural key is (Email, CurrencyCode). Rows are never deleted: unsubscribing
// flips Active to false and a later subscribe reactivates the same row, preserving
// SubscriptionID and CreatedAt.
type Subscription struct {
	SubscriptionID string    `json:"subscriptionID"` // Surrogate key (UUID)
	Email          string    `json:"email"`          // Normalized to lowercase
	CurrencyCode   string    `json:"currencyCode"`   // 3-letter uppercase ISO code
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"` // Set once at first creation
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
}
