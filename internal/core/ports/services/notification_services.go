package services

import (
	"context"

	"github.com/ratewatch/rate-notifier/internal/dto"
)

// NotificationSvcFacade fans the latest stored rates out to active subscribers.
type NotificationSvcFacade interface {
	// Dispatch groups active subscribers by currency, resolves the latest rate
	// once per group and attempts delivery to each recipient independently.
	// It never returns an error: all failures are contained and counted.
	Dispatch(ctx context.Context) dto.NotificationOutcome
}
