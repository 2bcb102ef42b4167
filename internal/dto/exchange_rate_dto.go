package dto

import (
	"time"

	"github.com/ratewatch/rate-notifier/internal/models"
	"github.com/shopspring/decimal"
)

// NBURate is one raw record from the NBU exchange-rate endpoint. Field names follow
// the upstream JSON exactly; Exchangedate arrives as "dd.MM.yyyy" and is parsed by
// the sync service, not here.
type NBURate struct {
	R030         int             `json:"r030"`
	Txt          string          `json:"txt"`
	Rate         decimal.Decimal `json:"rate"`
	Cc           string          `json:"cc"`
	ExchangeDate string          `json:"exchangedate"`
}

// ExchangeRateResponse defines the structure for API responses containing rate details.
type ExchangeRateResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	CurrencyName string          `json:"currencyName"`
	Rate         decimal.Decimal `json:"rate"`
	ExchangeDate string          `json:"exchangeDate"` // ISO date, e.g. "2024-01-15"
}

// ToExchangeRateResponse converts a models.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *models.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		CurrencyCode: rate.CurrencyCode,
		CurrencyName: rate.CurrencyName,
		Rate:         rate.Rate,
		ExchangeDate: rate.ExchangeDate.Format(time.DateOnly),
	}
}

// ToListExchangeRateResponse converts a slice of models.ExchangeRate to response DTOs.
func ToListExchangeRateResponse(rates []models.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
