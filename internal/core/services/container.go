package services

import (
	"log/slog"

	"github.com/ratewatch/rate-notifier/internal/core/ports"
	portssvc "github.com/ratewatch/rate-notifier/internal/core/ports/services"
)

// ContainerDeps bundles the leaf collaborators the services are built from.
type ContainerDeps struct {
	RateRepo          ports.ExchangeRateRepository
	SubscriptionRepo  ports.SubscriptionRepository
	RateSource        ports.RateSource
	Notifier          ports.Notifier
	NotifyConcurrency int
	Logger            *slog.Logger
}

// NewServiceContainer creates a service container with properly initialized dependencies.
func NewServiceContainer(deps ContainerDeps) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	rateService := NewRateService(deps.RateRepo, deps.RateSource, deps.Logger)
	container.Rate = rateService

	container.Subscription = NewSubscriptionService(deps.SubscriptionRepo, deps.Logger)

	container.Notification = NewNotificationService(
		container.Subscription,
		rateService,
		deps.Notifier,
		deps.NotifyConcurrency,
		deps.Logger,
	)

	return container
}

// Compile-time interface checks.
var (
	_ portssvc.RateSvcFacade         = (*RateService)(nil)
	_ portssvc.SubscriptionSvcFacade = (*SubscriptionService)(nil)
	_ portssvc.NotificationSvcFacade = (*NotificationService)(nil)
)
