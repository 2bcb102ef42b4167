package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the official rate of one currency against the base currency (UAH)
// on one calendar date. The natural key is (CurrencyCode, ExchangeDate); the storage
// layer enforces it with a unique index, so repeated syncs update name/rate in place
// instead of creating a second row.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Surrogate key (UUID)
	R030           int             `json:"r030"`           // NBU numeric currency code
	CurrencyCode   string          `json:"currencyCode"`   // 3-letter uppercase ISO code
	CurrencyName   string          `json:"currencyName"`   // e.g., "US Dollar"
	Rate           decimal.Decimal `json:"rate"`           // Precise decimal, relative to UAH
	ExchangeDate   time.Time       `json:"exchangeDate"`   // Date only, truncated to midnight UTC
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}
