package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ratewatch/rate-notifier/internal/apperrors"
	portssvc "github.com/ratewatch/rate-notifier/internal/core/ports/services"
	"github.com/ratewatch/rate-notifier/internal/dto"
	"github.com/ratewatch/rate-notifier/internal/middleware"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{
		rateService: rs,
	}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.GET("/:code", h.getLatestRate)
		rates.GET("/:code/history", h.getRateHistory)
	}
}

// getLatestRate godoc
// @Summary Get latest exchange rate
// @Description Retrieves the most recent stored rate for a currency code
// @Tags rates
// @Produce json
// @Param code path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Failure 404 {object} map[string]string "No rate on file for this currency"
// @Failure 500 {object} map[string]string "Failed to retrieve rate"
// @Router /rates/{code} [get]
func (h *rateHandler) getLatestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := c.Param("code")

	logger = logger.With(slog.String("currency_code", currencyCode))
	logger.Info("Received request to get latest rate")

	rate, err := h.rateService.GetLatestRate(c.Request.Context(), currencyCode)
	if err != nil {
		h.renderRateError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getRateHistory godoc
// @Summary Get historical exchange rates
// @Description Retrieves the stored rate for a specific date when the date query parameter is given, otherwise the full stored history for the currency
// @Tags rates
// @Produce json
// @Param code path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param date query string false "Date in ISO format (2024-01-15)"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code or date format"
// @Failure 404 {object} map[string]string "No rate on file"
// @Failure 500 {object} map[string]string "Failed to retrieve rates"
// @Router /rates/{code}/history [get]
func (h *rateHandler) getRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := c.Param("code")

	logger = logger.With(slog.String("currency_code", currencyCode))

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			logger.Warn("Invalid date format", slog.String("date", dateStr))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be in YYYY-MM-DD format"})
			return
		}

		logger.Info("Received request to get rate by date", slog.String("date", dateStr))
		rate, err := h.rateService.GetRateByDate(c.Request.Context(), currencyCode, date)
		if err != nil {
			h.renderRateError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, []dto.ExchangeRateResponse{dto.ToExchangeRateResponse(rate)})
		return
	}

	logger.Info("Received request to list rate history")
	rates, err := h.rateService.ListRateHistory(c.Request.Context(), currencyCode)
	if err != nil {
		h.renderRateError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

func (h *rateHandler) renderRateError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Exchange rate not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Exchange rate not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to retrieve exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
	}
}
