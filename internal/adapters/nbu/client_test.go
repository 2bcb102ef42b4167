package nbu_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ratewatch/rate-notifier/internal/adapters/nbu"
	"github.com/ratewatch/rate-notifier/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nbuFixture = `[
  {"r030":840,"txt":"Долар США","rate":41.2513,"cc":"USD","exchangedate":"15.01.2024"},
  {"r030":978,"txt":"Євро","rate":45.1034,"cc":"EUR","exchangedate":"15.01.2024"}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *nbu.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return nbu.NewClient(server.URL, 5*time.Second, slog.Default())
}

func TestFetchRates_DecodesSnapshot(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(nbuFixture))
	})

	rates, err := client.FetchRates(context.Background())

	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "USD", rates[0].Cc)
	assert.Equal(t, 840, rates[0].R030)
	assert.Equal(t, "15.01.2024", rates[0].ExchangeDate)
	assert.True(t, rates[0].Rate.Equal(decimal.RequireFromString("41.2513")))
	assert.Equal(t, "EUR", rates[1].Cc)
}

func TestFetchRates_EmptyArrayIsValid(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	rates, err := client.FetchRates(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rates)
}

func TestFetchRates_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream maintenance", http.StatusServiceUnavailable)
	})

	rates, err := client.FetchRates(context.Background())

	require.Error(t, err)
	assert.Nil(t, rates)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestFetchRates_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"`))
	})

	rates, err := client.FetchRates(context.Background())

	require.Error(t, err)
	assert.Nil(t, rates)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestFetchRates_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	client := nbu.NewClient(url, time.Second, slog.Default())

	_, err := client.FetchRates(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}

func TestFetchRates_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.FetchRates(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
}
