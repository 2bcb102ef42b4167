package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/ratewatch/rate-notifier/internal/apperrors"
	"github.com/ratewatch/rate-notifier/internal/core/ports"
	"github.com/ratewatch/rate-notifier/internal/dto"
	"github.com/ratewatch/rate-notifier/internal/models"
)

// nbuDateLayout is the textual date pattern used by the NBU endpoint (day.month.year).
const nbuDateLayout = "02.01.2006"

// RateService provides business logic for exchange rates: lookups against the
// stored history and synchronization of the external snapshot into storage.
type RateService struct {
	rateRepo ports.ExchangeRateRepository
	source   ports.RateSource
	logger   *slog.Logger
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo ports.ExchangeRateRepository, source ports.RateSource, logger *slog.Logger) *RateService {
	return &RateService{
		rateRepo: rateRepo,
		source:   source,
		logger:   logger,
	}
}

// GetLatestRate retrieves the most recent stored rate for a currency.
func (s *RateService) GetLatestRate(ctx context.Context, currencyCode string) (*models.ExchangeRate, error) {
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindLatestByCurrency(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest rate for %s: %w", code, err)
	}
	return rate, nil
}

// GetRateByDate retrieves the stored rate for a currency on a specific date.
func (s *RateService) GetRateByDate(ctx context.Context, currencyCode string, date time.Time) (*models.ExchangeRate, error) {
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindByCurrencyAndDate(ctx, code, date.Truncate(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to get rate for %s on %s: %w", code, date.Format(time.DateOnly), err)
	}
	return rate, nil
}

// ListRateHistory retrieves all stored rates for a currency, newest first.
func (s *RateService) ListRateHistory(ctx context.Context, currencyCode string) ([]models.ExchangeRate, error) {
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}

	rates, err := s.rateRepo.ListByCurrency(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate history for %s: %w", code, err)
	}
	return rates, nil
}

// SyncRates fetches the external snapshot and reconciles it into storage.
// A failure of the fetch aborts the whole run; a failure of one record is
// logged, counted as skipped and never fails the batch.
func (s *RateService) SyncRates(ctx context.Context) (dto.SyncResult, error) {
	s.logger.Info("Starting exchange rate synchronization")

	snapshot, err := s.source.FetchRates(ctx)
	if err != nil {
		return dto.SyncResult{}, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}

	if len(snapshot) == 0 {
		// The source legitimately has no data on some days (e.g. holidays).
		s.logger.Warn("No exchange rates received from source")
		return dto.SyncResult{}, nil
	}

	var result dto.SyncResult
	for _, raw := range snapshot {
		created, err := s.reconcileRecord(ctx, raw)
		if err != nil {
			s.logger.Error("Skipping exchange rate record",
				slog.String("currency_code", raw.Cc),
				slog.String("error", err.Error()),
			)
			result.Skipped++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	s.logger.Info("Exchange rate synchronization completed",
		slog.Int("created", result.Created),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
	)
	return result, nil
}

// reconcileRecord normalizes one raw record and upserts it by natural key.
// Returns true when a new row was created.
func (s *RateService) reconcileRecord(ctx context.Context, raw dto.NBURate) (bool, error) {
	code, err := normalizeCurrencyCode(raw.Cc)
	if err != nil {
		return false, err
	}
	if raw.Rate.IsNegative() {
		return false, fmt.Errorf("%w: rate for %s must not be negative", apperrors.ErrValidation, code)
	}

	exchangeDate, err := time.Parse(nbuDateLayout, raw.ExchangeDate)
	if err != nil {
		return false, fmt.Errorf("%w: unparseable exchange date %q: %v", apperrors.ErrValidation, raw.ExchangeDate, err)
	}

	now := time.Now().UTC()
	return s.rateRepo.UpsertExchangeRate(ctx, models.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		R030:           raw.R030,
		CurrencyCode:   code,
		CurrencyName:   raw.Txt,
		Rate:           raw.Rate,
		ExchangeDate:   exchangeDate,
		CreatedAt:      now,
		LastUpdatedAt:  now,
	})
}

// normalizeCurrencyCode uppercases a currency code so lookups are case-insensitive
// from the caller's perspective.
func normalizeCurrencyCode(currencyCode string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code %q must be 3 letters", apperrors.ErrValidation, currencyCode)
	}
	return code, nil
}
