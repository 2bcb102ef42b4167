package nbu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ratewatch/rate-notifier/internal/apperrors"
	"github.com/ratewatch/rate-notifier/internal/core/ports"
	"github.com/ratewatch/rate-notifier/internal/dto"
)

// Client fetches the daily exchange-rate snapshot from the NBU JSON endpoint.
// All failures are reported as apperrors.ErrSourceUnavailable so the caller can
// treat the whole fetch stage as failed.
type Client struct {
	httpClient *http.Client
	apiURL     string
	logger     *slog.Logger
}

// NewClient creates a new NBU API client. Every request is bounded by timeout.
func NewClient(apiURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
		logger:     logger,
	}
}

var _ ports.RateSource = (*Client)(nil)

// FetchRates retrieves today's official rates. An empty array is a valid response.
func (c *Client) FetchRates(ctx context.Context) ([]dto.NBURate, error) {
	c.logger.Info("Fetching exchange rates", slog.String("url", c.apiURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", apperrors.ErrSourceUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrSourceUnavailable, resp.StatusCode)
	}

	var rates []dto.NBURate
	if err := json.Unmarshal(body, &rates); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", apperrors.ErrSourceUnavailable, err)
	}

	c.logger.Info("Fetched exchange rates", slog.Int("count", len(rates)))
	return rates, nil
}
