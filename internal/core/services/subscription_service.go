package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ratewatch/rate-notifier/internal/apperrors"
	"github.com/ratewatch/rate-notifier/internal/core/ports"
	"github.com/ratewatch/rate-notifier/internal/dto"
	"github.com/ratewatch/rate-notifier/internal/models"
)

// SubscriptionService manages the subscribe/unsubscribe lifecycle.
type SubscriptionService struct {
	subRepo ports.SubscriptionRepository
	logger  *slog.Logger
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(subRepo ports.SubscriptionRepository, logger *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		subRepo: subRepo,
		logger:  logger,
	}
}

// Subscribe creates a subscription for (email, currency), reactivating an inactive
// row if one exists. An already-active pair fails with apperrors.ErrDuplicate.
func (s *SubscriptionService) Subscribe(ctx context.Context, req dto.SubscribeRequest) (*models.Subscription, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	code, err := normalizeCurrencyCode(req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Creating subscription",
		slog.String("email", email),
		slog.String("currency_code", code),
	)

	existing, err := s.subRepo.FindByEmailAndCurrency(ctx, email, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up subscription: %w", err)
	}

	now := time.Now().UTC()
	var sub models.Subscription
	switch {
	case existing == nil:
		sub = models.Subscription{
			SubscriptionID: uuid.NewString(),
			Email:          email,
			CurrencyCode:   code,
			Active:         true,
			CreatedAt:      now,
			LastUpdatedAt:  now,
		}
	case existing.Active:
		return nil, fmt.Errorf("%w: subscription already exists for %s/%s", apperrors.ErrDuplicate, email, code)
	default:
		// Reactivate the existing row, preserving its identity and CreatedAt.
		sub = *existing
		sub.Active = true
		sub.LastUpdatedAt = now
	}

	if err := s.subRepo.SaveSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to save subscription: %w", err)
	}

	s.logger.Info("Subscription created", slog.String("subscription_id", sub.SubscriptionID))
	return &sub, nil
}

// Unsubscribe deactivates the subscription for (email, currency). A missing pair
// fails with apperrors.ErrNotFound; an already-inactive pair succeeds silently
// since the end state is identical.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, email, currencyCode string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return err
	}

	s.logger.Info("Unsubscribing",
		slog.String("email", email),
		slog.String("currency_code", code),
	)

	existing, err := s.subRepo.FindByEmailAndCurrency(ctx, email, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: no subscription for %s/%s", apperrors.ErrNotFound, email, code)
		}
		return fmt.Errorf("failed to look up subscription: %w", err)
	}

	if !existing.Active {
		return nil
	}

	existing.Active = false
	existing.LastUpdatedAt = time.Now().UTC()
	if err := s.subRepo.SaveSubscription(ctx, *existing); err != nil {
		return fmt.Errorf("failed to deactivate subscription: %w", err)
	}

	s.logger.Info("Subscription deactivated", slog.String("subscription_id", existing.SubscriptionID))
	return nil
}

// ListActiveSubscriptions returns all rows with active=true, in no guaranteed order.
func (s *SubscriptionService) ListActiveSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	subs, err := s.subRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active subscriptions: %w", err)
	}
	return subs, nil
}
