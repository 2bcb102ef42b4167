package services

import (
	"context"

	"github.com/ratewatch/rate-notifier/internal/dto"
	"github.com/ratewatch/rate-notifier/internal/models"
)

// SubscriptionSvcFacade manages the subscribe/unsubscribe lifecycle and exposes
// the active-subscriber list to the notification stage.
type SubscriptionSvcFacade interface {
	// Subscribe creates or reactivates a subscription. An already-active pair
	// fails with apperrors.ErrDuplicate.
	Subscribe(ctx context.Context, req dto.SubscribeRequest) (*models.Subscription, error)

	// Unsubscribe deactivates a subscription. A missing pair fails with
	// apperrors.ErrNotFound; an already-inactive pair succeeds silently.
	Unsubscribe(ctx context.Context, email, currencyCode string) error

	// ListActiveSubscriptions returns all active rows, in no guaranteed order.
	ListActiveSubscriptions(ctx context.Context) ([]models.Subscription, error)
}
