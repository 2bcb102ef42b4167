package services

import (
	"context"
	"time"

	"github.com/ratewatch/rate-notifier/internal/dto"
	"github.com/ratewatch/rate-notifier/internal/models"
)

// RateReaderSvc defines read operations for stored exchange rates.
type RateReaderSvc interface {
	// GetLatestRate retrieves the most recent stored rate for a currency.
	GetLatestRate(ctx context.Context, currencyCode string) (*models.ExchangeRate, error)

	// GetRateByDate retrieves the stored rate for a currency on a specific date.
	GetRateByDate(ctx context.Context, currencyCode string, date time.Time) (*models.ExchangeRate, error)

	// ListRateHistory retrieves all stored rates for a currency, newest first.
	ListRateHistory(ctx context.Context, currencyCode string) ([]models.ExchangeRate, error)
}

// RateSyncSvc defines the synchronization operation run by the scheduler.
type RateSyncSvc interface {
	// SyncRates fetches the external snapshot and reconciles it into storage.
	SyncRates(ctx context.Context) (dto.SyncResult, error)
}

// RateSvcFacade combines all rate-related service interfaces.
type RateSvcFacade interface {
	RateReaderSvc
	RateSyncSvc
}
