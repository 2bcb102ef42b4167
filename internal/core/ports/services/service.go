package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used by the handlers and the sync scheduler.
type ServiceContainer struct {
	Rate         RateSvcFacade
	Subscription SubscriptionSvcFacade
	Notification NotificationSvcFacade
}
