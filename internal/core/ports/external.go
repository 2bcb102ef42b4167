package ports

import (
	"context"

	"github.com/ratewatch/rate-notifier/internal/dto"
	"github.com/ratewatch/rate-notifier/internal/models"
)

// RateSource fetches a snapshot of today's official rates from an external provider.
// An empty snapshot is a valid result (the provider may have no data on holidays).
type RateSource interface {
	FetchRates(ctx context.Context) ([]dto.NBURate, error)
}

// Notifier delivers a single formatted rate notification to one recipient.
// Each call is independent and bounded by the transport's timeout; failures are
// reported per call, never retried here.
type Notifier interface {
	Deliver(ctx context.Context, recipientEmail string, rate models.ExchangeRate) error
}
