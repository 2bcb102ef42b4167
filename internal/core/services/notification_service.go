package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ratewatch/rate-notifier/internal/core/ports"
	portssvc "github.com/ratewatch/rate-notifier/internal/core/ports/services"
	"github.com/ratewatch/rate-notifier/internal/dto"
	"github.com/ratewatch/rate-notifier/internal/models"
)

const defaultNotifyConcurrency = 4

// NotificationService fans the latest stored rate for each subscribed currency
// out to that currency's active subscribers.
type NotificationService struct {
	subscriptions portssvc.SubscriptionSvcFacade
	rates         portssvc.RateReaderSvc
	notifier      ports.Notifier
	logger        *slog.Logger
	concurrency   int
}

// NewNotificationService creates a new NotificationService. Deliveries run on a
// bounded worker pool of the given size; zero or negative falls back to a default.
func NewNotificationService(
	subscriptions portssvc.SubscriptionSvcFacade,
	rates portssvc.RateReaderSvc,
	notifier ports.Notifier,
	concurrency int,
	logger *slog.Logger,
) *NotificationService {
	if concurrency <= 0 {
		concurrency = defaultNotifyConcurrency
	}
	return &NotificationService{
		subscriptions: subscriptions,
		rates:         rates,
		notifier:      notifier,
		logger:        logger,
		concurrency:   concurrency,
	}
}

// delivery is one pending notification: a resolved rate bound to one recipient.
type delivery struct {
	recipient string
	rate      models.ExchangeRate
}

// Dispatch retrieves all active subscriptions, resolves the latest rate once per
// distinct currency and attempts delivery to each recipient independently.
// A missing rate fails its whole group; a delivery failure affects only that
// recipient. Dispatch itself never fails.
func (s *NotificationService) Dispatch(ctx context.Context) dto.NotificationOutcome {
	var outcome dto.NotificationOutcome

	subs, err := s.subscriptions.ListActiveSubscriptions(ctx)
	if err != nil {
		s.logger.Error("Failed to list active subscriptions", slog.String("error", err.Error()))
		return outcome
	}
	if len(subs) == 0 {
		s.logger.Info("No active subscriptions found")
		return outcome
	}

	// Grouping bounds rate lookups to the number of distinct subscribed
	// currencies, not the number of subscribers.
	byCurrency := make(map[string][]models.Subscription)
	for _, sub := range subs {
		byCurrency[sub.CurrencyCode] = append(byCurrency[sub.CurrencyCode], sub)
	}

	var pending []delivery
	for currencyCode, group := range byCurrency {
		rate, err := s.rates.GetLatestRate(ctx, currencyCode)
		if err != nil {
			s.logger.Error("Failed to resolve latest rate for currency group",
				slog.String("currency_code", currencyCode),
				slog.Int("subscribers", len(group)),
				slog.String("error", err.Error()),
			)
			outcome.Failed += len(group)
			continue
		}
		for _, sub := range group {
			pending = append(pending, delivery{recipient: sub.Email, rate: *rate})
		}
	}

	succeeded, failed := s.deliverAll(ctx, pending)
	outcome.Succeeded += succeeded
	outcome.Failed += failed

	s.logger.Info("Notifications dispatched",
		slog.Int("succeeded", outcome.Succeeded),
		slog.Int("failed", outcome.Failed),
	)
	return outcome
}

// deliverAll attempts every pending delivery over a bounded worker pool.
// Each attempt is independent; failures are logged and counted.
func (s *NotificationService) deliverAll(ctx context.Context, pending []delivery) (succeeded, failed int) {
	if len(pending) == 0 {
		return 0, 0
	}

	jobs := make(chan delivery)
	var mu sync.Mutex
	var wg sync.WaitGroup

	workers := s.concurrency
	if workers > len(pending) {
		workers = len(pending)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				err := s.notifier.Deliver(ctx, job.recipient, job.rate)
				mu.Lock()
				if err != nil {
					s.logger.Error("Failed to deliver notification",
						slog.String("recipient", job.recipient),
						slog.String("currency_code", job.rate.CurrencyCode),
						slog.String("error", err.Error()),
					)
					failed++
				} else {
					succeeded++
				}
				mu.Unlock()
			}
		}()
	}

	for _, job := range pending {
		jobs <- job
	}
	close(jobs)
	wg.Wait()

	return succeeded, failed
}
