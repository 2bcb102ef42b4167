package ports

import (
	"context"
	"time"

	"github.com/ratewatch/rate-notifier/internal/models"
)

// Note: Context is included on every method for cancellation/timeouts.

// ExchangeRateRepository defines persistence operations for ExchangeRates.
// The store enforces a unique index on (currency_code, exchange_date); upserts
// are matched by that natural key.
type ExchangeRateRepository interface {
	// FindByCurrencyAndDate retrieves the rate for one currency on one date.
	FindByCurrencyAndDate(ctx context.Context, currencyCode string, date time.Time) (*models.ExchangeRate, error)

	// FindLatestByCurrency retrieves the rate with the maximum exchange date for a currency.
	FindLatestByCurrency(ctx context.Context, currencyCode string) (*models.ExchangeRate, error)

	// ListByCurrency retrieves all stored rates for a currency, newest first.
	ListByCurrency(ctx context.Context, currencyCode string) ([]models.ExchangeRate, error)

	// UpsertExchangeRate inserts the rate or updates name/rate on the existing row
	// matched by natural key. Returns true when a new row was created.
	UpsertExchangeRate(ctx context.Context, rate models.ExchangeRate) (bool, error)
}

// SubscriptionRepository defines persistence operations for Subscriptions.
// The store enforces a unique index on (email, currency_code), which also
// serializes concurrent subscribe calls for the same key.
type SubscriptionRepository interface {
	FindByEmailAndCurrency(ctx context.Context, email, currencyCode string) (*models.Subscription, error)
	ListActive(ctx context.Context) ([]models.Subscription, error)

	// SaveSubscription upserts by natural key. The insert path sets created_at;
	// the update path preserves it.
	SaveSubscription(ctx context.Context, sub models.Subscription) error
}
