package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratewatch/rate-notifier/internal/apperrors"
	portssvc "github.com/ratewatch/rate-notifier/internal/core/ports/services"
	"github.com/ratewatch/rate-notifier/internal/dto"
	"github.com/ratewatch/rate-notifier/internal/middleware"
)

// subscriptionHandler handles HTTP requests related to subscriptions.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

// newSubscriptionHandler creates a new subscriptionHandler.
func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{
		subscriptionService: ss,
	}
}

// registerSubscriptionRoutes registers routes related to subscriptions.
func registerSubscriptionRoutes(rg *gin.RouterGroup, subscriptionService portssvc.SubscriptionSvcFacade, mw ...gin.HandlerFunc) {
	h := newSubscriptionHandler(subscriptionService)

	subscriptions := rg.Group("/subscriptions", mw...)
	{
		subscriptions.POST("", h.subscribe)
		subscriptions.DELETE("", h.unsubscribe)
	}
}

// subscribe godoc
// @Summary Subscribe to currency rate notifications
// @Description Creates an email subscription for notifications about a specific currency exchange rate
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body dto.SubscribeRequest true "Subscription details"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Invalid email or currency code"
// @Failure 409 {object} map[string]string "Subscription already exists"
// @Failure 500 {object} map[string]string "Failed to create subscription"
// @Router /subscriptions [post]
func (h *subscriptionHandler) subscribe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Subscribe", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("currency_code", req.CurrencyCode))
	logger.Info("Received request to create subscription")

	sub, err := h.subscriptionService.Subscribe(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Attempted to create duplicate subscription")
			c.JSON(http.StatusConflict, gin.H{"error": "Subscription already exists for this email and currency"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating subscription", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create subscription", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		}
		return
	}

	logger.Info("Subscription created successfully", slog.String("subscription_id", sub.SubscriptionID))
	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub))
}

// unsubscribe godoc
// @Summary Unsubscribe from currency rate notifications
// @Description Deactivates an existing email subscription for a specific currency
// @Tags subscriptions
// @Produce json
// @Param email query string true "Email address of the subscriber"
// @Param currencyCode query string true "Currency Code (3 letters)"
// @Success 204 "Subscription removed"
// @Failure 400 {object} map[string]string "Missing or invalid parameters"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Failure 500 {object} map[string]string "Failed to remove subscription"
// @Router /subscriptions [delete]
func (h *subscriptionHandler) unsubscribe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email := c.Query("email")
	currencyCode := c.Query("currencyCode")
	if email == "" || currencyCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both email and currencyCode query parameters are required"})
		return
	}

	logger = logger.With(slog.String("currency_code", currencyCode))
	logger.Info("Received request to remove subscription")

	err := h.subscriptionService.Unsubscribe(c.Request.Context(), email, currencyCode)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Subscription not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error removing subscription", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to remove subscription", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove subscription"})
		}
		return
	}

	logger.Info("Subscription deactivated successfully")
	c.Status(http.StatusNoContent)
}
