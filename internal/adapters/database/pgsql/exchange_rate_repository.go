package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ratewatch/rate-notifier/internal/apperrors"
	"github.com/ratewatch/rate-notifier/internal/core/ports"
	"github.com/ratewatch/rate-notifier/internal/models"
)

// PgxExchangeRateRepository implements ports.ExchangeRateRepository using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewPgxExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ ports.ExchangeRateRepository = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `
	exchange_rate_id, r030, currency_code, currency_name, rate, exchange_date,
	created_at, last_updated_at`

// UpsertExchangeRate inserts a rate or updates name/rate on the existing row
// matched by (currency_code, exchange_date). The existing row keeps its
// exchange_rate_id and created_at. Returns true when a new row was created.
func (r *PgxExchangeRateRepository) UpsertExchangeRate(ctx context.Context, rate models.ExchangeRate) (bool, error) {
	currencyCode := strings.ToUpper(rate.CurrencyCode)
	exchangeDate := rate.ExchangeDate.Truncate(24 * time.Hour)

	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}

	var existingID string
	err = tx.QueryRow(ctx,
		`SELECT exchange_rate_id FROM exchange_rates
		WHERE currency_code = $1 AND exchange_date = $2`,
		currencyCode, exchangeDate,
	).Scan(&existingID)

	created := false
	switch {
	case err == nil:
		_, err = tx.Exec(ctx, `
			UPDATE exchange_rates
			SET r030 = $1, currency_name = $2, rate = $3, last_updated_at = $4
			WHERE exchange_rate_id = $5`,
			rate.R030, rate.CurrencyName, rate.Rate, rate.LastUpdatedAt, existingID,
		)
	case errors.Is(err, pgx.ErrNoRows):
		created = true
		_, err = tx.Exec(ctx, `
			INSERT INTO exchange_rates (
				exchange_rate_id, r030, currency_code, currency_name, rate, exchange_date,
				created_at, last_updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rate.ExchangeRateID, rate.R030, currencyCode, rate.CurrencyName,
			rate.Rate, exchangeDate, rate.CreatedAt, rate.LastUpdatedAt,
		)
	}

	if err != nil {
		_ = r.Rollback(ctx, tx)
		return false, fmt.Errorf("failed to upsert exchange rate %s/%s: %w",
			currencyCode, exchangeDate.Format(time.DateOnly), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return false, err
	}
	return created, nil
}

// FindByCurrencyAndDate retrieves the rate for one currency on one date.
func (r *PgxExchangeRateRepository) FindByCurrencyAndDate(ctx context.Context, currencyCode string, date time.Time) (*models.ExchangeRate, error) {
	query := `
		SELECT` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1 AND exchange_date = $2;
	`
	return r.queryOne(ctx, query, strings.ToUpper(currencyCode), date.Truncate(24*time.Hour))
}

// FindLatestByCurrency retrieves the rate with the maximum exchange date for a currency.
func (r *PgxExchangeRateRepository) FindLatestByCurrency(ctx context.Context, currencyCode string) (*models.ExchangeRate, error) {
	query := `
		SELECT` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1
		ORDER BY exchange_date DESC
		LIMIT 1;
	`
	return r.queryOne(ctx, query, strings.ToUpper(currencyCode))
}

// ListByCurrency retrieves all stored rates for a currency, newest first.
func (r *PgxExchangeRateRepository) ListByCurrency(ctx context.Context, currencyCode string) ([]models.ExchangeRate, error) {
	query := `
		SELECT` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1
		ORDER BY exchange_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []models.ExchangeRate
	for rows.Next() {
		rate, err := scanExchangeRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}
	return rates, nil
}

func (r *PgxExchangeRateRepository) queryOne(ctx context.Context, query string, args ...any) (*models.ExchangeRate, error) {
	rate, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: exchange rate", apperrors.ErrNotFound)
		}
		return nil, err
	}
	return &rate, nil
}

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID, &rate.R030, &rate.CurrencyCode, &rate.CurrencyName,
		&rate.Rate, &rate.ExchangeDate, &rate.CreatedAt, &rate.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rate, err
		}
		return rate, fmt.Errorf("failed to scan exchange rate: %w", err)
	}
	return rate, nil
}
