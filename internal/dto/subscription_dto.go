package dto

import (
	"time"

	"github.com/ratewatch/rate-notifier/internal/models"
)

// SubscribeRequest defines the payload for creating a currency rate subscription.
type SubscribeRequest struct {
	Email        string `json:"email" binding:"required,email"`
	CurrencyCode string `json:"currencyCode" binding:"required,currencycode"`
}

// SubscriptionResponse defines the structure for API responses containing subscription details.
type SubscriptionResponse struct {
	SubscriptionID string    `json:"subscriptionID"`
	Email          string    `json:"email"`
	CurrencyCode   string    `json:"currencyCode"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToSubscriptionResponse converts a models.Subscription to SubscriptionResponse DTO
func ToSubscriptionResponse(sub *models.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SubscriptionID: sub.SubscriptionID,
		Email:          sub.Email,
		CurrencyCode:   sub.CurrencyCode,
		Active:         sub.Active,
		CreatedAt:      sub.CreatedAt,
	}
}
